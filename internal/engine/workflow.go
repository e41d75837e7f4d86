package engine

import (
	"fmt"

	"github.com/shaiso/Reflow/internal/domain"
)

// node — узел графа зависимостей.
type node struct {
	// order — задание, соответствующее узлу.
	order domain.WorkOrder

	// dependents — номера заданий, зависящих от этого (рёбра узел → потомок),
	// в порядке добавления рёбер.
	dependents []string

	// inDegree — количество входящих рёбер (родителей).
	inDegree int
}

// Workflow — направленный ациклический граф заданий.
//
// Граф построен как индекс по идентификаторам (map номер → узел плюс
// списки смежности), а не как сеть указателей: так проверка циклов и
// топологическая сортировка остаются простыми индексными алгоритмами.
type Workflow struct {
	nodes map[string]*node

	// seq — номера заданий в порядке добавления. Определяет детерминизм
	// топологического порядка при равных условиях.
	seq []string
}

// BuildWorkflow строит граф зависимостей из списка заданий.
//
// Задания обрабатываются в заданной последовательности (порядок контролирует
// вызывающий). Для каждого задания добавляется узел, затем рёбра от каждого
// объявленного родителя. Перед добавлением ребра проверяется, не замкнёт ли
// оно цикл — при замыкании сборка немедленно прерывается с указанием пары.
//
// Ссылка на ещё не добавленного родителя (в том числе объявленного позже по
// входу) отклоняется как ErrDependencyNotFound: протокол check-then-add не
// различает "ещё не добавлен" и "не существует".
//
// После добавления всех узлов выполняется контрольная проверка графа
// на циклы целиком.
func BuildWorkflow(orders []domain.WorkOrder) (*Workflow, error) {
	w := &Workflow{nodes: make(map[string]*node, len(orders))}

	for _, wo := range orders {
		if _, exists := w.nodes[wo.WorkOrderNumber]; exists {
			return nil, NewScheduleError(wo.WorkOrderNumber, "",
				fmt.Sprintf("work order %s already exists", wo.WorkOrderNumber),
				ErrDuplicateWorkOrder)
		}

		w.nodes[wo.WorkOrderNumber] = &node{order: wo}
		w.seq = append(w.seq, wo.WorkOrderNumber)

		for _, parentID := range wo.DependsOnWorkOrderIDs {
			if err := w.addEdge(parentID, wo.WorkOrderNumber); err != nil {
				return nil, err
			}
		}
	}

	// Контрольная проверка: построенный граф ацикличен
	if len(w.kahnOrder()) != len(w.nodes) {
		return nil, NewScheduleError("", "",
			"cannot build the workflow: the graph has cycles",
			ErrCyclicDependency)
	}

	return w, nil
}

// addEdge добавляет ребро родитель → потомок с проверкой цикла до вставки.
// Повторное ребро той же пары игнорируется.
func (w *Workflow) addEdge(from, to string) error {
	parent, exists := w.nodes[from]
	if !exists {
		return NewScheduleError(to, from,
			fmt.Sprintf("depends on unknown work order: %s", from),
			ErrDependencyNotFound)
	}

	for _, dep := range parent.dependents {
		if dep == to {
			return nil
		}
	}

	if w.wouldCreateCycle(from, to) {
		return NewScheduleError(to, from,
			fmt.Sprintf("work order %s will create a cycle with %s", to, from),
			ErrCyclicDependency)
	}

	parent.dependents = append(parent.dependents, to)
	w.nodes[to].inDegree++
	return nil
}

// wouldCreateCycle проверяет, замкнёт ли ребро from → to цикл:
// это так, если from достижим из to по уже существующим рёбрам
// (или from и to — один узел).
func (w *Workflow) wouldCreateCycle(from, to string) bool {
	if from == to {
		return true
	}

	visited := make(map[string]bool)
	stack := []string{to}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id == from {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true

		stack = append(stack, w.nodes[id].dependents...)
	}
	return false
}

// TopologicalOrder возвращает номера заданий в топологическом порядке:
// каждый родитель раньше любого из своих потомков.
//
// Порядок детерминирован: среди готовых узлов первым берётся добавленный
// раньше (очередь Кана засевается в порядке добавления узлов).
func (w *Workflow) TopologicalOrder() []string {
	return w.kahnOrder()
}

// kahnOrder выполняет топологическую сортировку (алгоритм Кана).
// При цикле возвращает неполный список.
func (w *Workflow) kahnOrder() []string {
	inDegree := make(map[string]int, len(w.nodes))
	for id, n := range w.nodes {
		inDegree[id] = n.inDegree
	}

	var queue []string
	for _, id := range w.seq {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(w.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, dep := range w.nodes[id].dependents {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	return order
}

// Get возвращает задание по номеру.
func (w *Workflow) Get(id string) (domain.WorkOrder, bool) {
	n, ok := w.nodes[id]
	if !ok {
		return domain.WorkOrder{}, false
	}
	return n.order, true
}

// Size возвращает количество узлов в графе.
func (w *Workflow) Size() int {
	return len(w.nodes)
}

// EdgeCount возвращает количество рёбер в графе.
func (w *Workflow) EdgeCount() int {
	count := 0
	for _, n := range w.nodes {
		count += len(n.dependents)
	}
	return count
}

// HasEdge проверяет наличие ребра родитель → потомок.
func (w *Workflow) HasEdge(from, to string) bool {
	n, ok := w.nodes[from]
	if !ok {
		return false
	}
	for _, dep := range n.dependents {
		if dep == to {
			return true
		}
	}
	return false
}
