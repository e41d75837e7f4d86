package engine

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/shaiso/Reflow/internal/domain"
)

func TestBuildWorkflow_Empty(t *testing.T) {
	w, err := BuildWorkflow(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Size() != 0 {
		t.Errorf("expected 0 nodes, got %d", w.Size())
	}
	if len(w.TopologicalOrder()) != 0 {
		t.Errorf("expected empty order, got %v", w.TopologicalOrder())
	}
}

func TestBuildWorkflow_SingleNode(t *testing.T) {
	w, err := BuildWorkflow([]domain.WorkOrder{workOrder("WO-1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Size() != 1 {
		t.Errorf("expected 1 node, got %d", w.Size())
	}
	if order := w.TopologicalOrder(); len(order) != 1 || order[0] != "WO-1" {
		t.Errorf("expected [WO-1], got %v", order)
	}
}

func TestBuildWorkflow_SimpleChain(t *testing.T) {
	w, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A"),
		workOrder("B", "A"),
		workOrder("C", "B"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Для цепочки порядок единственный
	want := []string{"A", "B", "C"}
	if got := w.TopologicalOrder(); !slices.Equal(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}

	if !w.HasEdge("A", "B") || !w.HasEdge("B", "C") {
		t.Error("chain edges missing")
	}
	if w.HasEdge("A", "C") {
		t.Error("unexpected edge A→C")
	}
}

func TestBuildWorkflow_Diamond(t *testing.T) {
	// A → B → D
	// A → C → D
	w, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A"),
		workOrder("B", "A"),
		workOrder("C", "A"),
		workOrder("D", "B", "C"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Size() != 4 {
		t.Errorf("expected 4 nodes, got %d", w.Size())
	}
	if w.EdgeCount() != 4 {
		t.Errorf("expected 4 edges, got %d", w.EdgeCount())
	}

	// Проверяем частичный порядок
	order := w.TopologicalOrder()
	positions := make(map[string]int)
	for i, id := range order {
		positions[id] = i
	}
	if positions["A"] > positions["B"] || positions["A"] > positions["C"] {
		t.Error("A should come before B and C")
	}
	if positions["B"] > positions["D"] || positions["C"] > positions["D"] {
		t.Error("B and C should come before D")
	}
}

func TestBuildWorkflow_Forest(t *testing.T) {
	// Две независимые цепочки
	w, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A"),
		workOrder("B", "A"),
		workOrder("X"),
		workOrder("Y", "X"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := w.TopologicalOrder()
	if len(order) != 4 {
		t.Fatalf("expected 4 nodes in order, got %d", len(order))
	}
	positions := make(map[string]int)
	for i, id := range order {
		positions[id] = i
	}
	if positions["A"] > positions["B"] {
		t.Error("A should come before B")
	}
	if positions["X"] > positions["Y"] {
		t.Error("X should come before Y")
	}
}

func TestBuildWorkflow_Deterministic(t *testing.T) {
	orders := []domain.WorkOrder{
		workOrder("C"),
		workOrder("A"),
		workOrder("B"),
		workOrder("D", "C", "A"),
	}

	first, err := BuildWorkflow(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Независимые узлы идут в порядке объявления
	want := []string{"C", "A", "B", "D"}
	if got := first.TopologicalOrder(); !slices.Equal(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}

	// Повторная сборка даёт тот же порядок
	second, err := BuildWorkflow(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(first.TopologicalOrder(), second.TopologicalOrder()) {
		t.Error("expected identical order on rebuild")
	}
}

func TestBuildWorkflow_PreservesOrderData(t *testing.T) {
	wo := workOrder("WO-42")
	wo.DurationMinutes = 45

	w, err := BuildWorkflow([]domain.WorkOrder{wo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := w.Get("WO-42")
	if !ok {
		t.Fatal("WO-42 not found")
	}
	if got.DurationMinutes != 45 {
		t.Errorf("expected duration 45, got %d", got.DurationMinutes)
	}

	if _, ok := w.Get("WO-99"); ok {
		t.Error("unexpected node WO-99")
	}
}

func TestBuildWorkflow_ManyDependencies(t *testing.T) {
	w, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A"),
		workOrder("B"),
		workOrder("C"),
		workOrder("D"),
		workOrder("E"),
		workOrder("F", "A", "B", "C", "D", "E"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.EdgeCount() != 5 {
		t.Errorf("expected 5 edges, got %d", w.EdgeCount())
	}
	for _, parent := range []string{"A", "B", "C", "D", "E"} {
		if !w.HasEdge(parent, "F") {
			t.Errorf("expected edge %s→F", parent)
		}
	}

	order := w.TopologicalOrder()
	if order[len(order)-1] != "F" {
		t.Errorf("expected F last, got %v", order)
	}
}

func TestBuildWorkflow_MissingDependency(t *testing.T) {
	_, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A", "GHOST"),
	})
	if !errors.Is(err, ErrDependencyNotFound) {
		t.Fatalf("expected ErrDependencyNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "GHOST") {
		t.Errorf("error should name the missing dependency: %v", err)
	}
}

func TestBuildWorkflow_ForwardReference(t *testing.T) {
	// Зависимость на узел, объявленный позже — считается отсутствующей
	_, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A", "C"),
		workOrder("B", "A"),
		workOrder("C"),
	})
	if !errors.Is(err, ErrDependencyNotFound) {
		t.Errorf("expected ErrDependencyNotFound, got %v", err)
	}
}

func TestBuildWorkflow_SelfDependency(t *testing.T) {
	_, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A", "A"),
	})
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention the cycle: %v", err)
	}
}

func TestBuildWorkflow_DuplicateWorkOrder(t *testing.T) {
	_, err := BuildWorkflow([]domain.WorkOrder{
		workOrder("A"),
		workOrder("A"),
	})
	if !errors.Is(err, ErrDuplicateWorkOrder) {
		t.Fatalf("expected ErrDuplicateWorkOrder, got %v", err)
	}

	var se *ScheduleError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScheduleError, got %T", err)
	}
	if se.WorkOrder != "A" {
		t.Errorf("expected work order A in error, got %q", se.WorkOrder)
	}
}
