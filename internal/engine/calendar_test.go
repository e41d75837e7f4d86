package engine

import (
	"testing"
	"time"

	"github.com/shaiso/Reflow/internal/domain"
)

func TestIsInShift(t *testing.T) {
	wc := workCenter("WC-001", mondayShift())

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"внутри смены", at(5, 10, 0), true},
		{"другой день недели", at(6, 10, 0), false},
		{"после конца смены", at(5, 18, 0), false},
		{"час начала включается", at(5, 8, 0), true},
		{"час конца не включается", at(5, 17, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInShift(wc, tt.at); got != tt.want {
				t.Errorf("IsInShift(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestIsInMaintenanceWindow(t *testing.T) {
	// Окно обслуживания: понедельник 09:00–11:00
	window := domain.MaintenanceWindow{StartDate: at(5, 9, 0), EndDate: at(5, 11, 0)}

	tests := []struct {
		name string
		wc   *domain.WorkCenter
		at   time.Time
		want bool
	}{
		{"внутри окна", workCenter("WC-001", mondayShift(), window), at(5, 10, 0), true},
		{"до окна", workCenter("WC-001", mondayShift(), window), at(5, 8, 59), false},
		{"после окна", workCenter("WC-001", mondayShift(), window), at(5, 11, 1), false},
		{"нижняя граница включается", workCenter("WC-001", mondayShift(), window), at(5, 9, 0), true},
		{"верхняя граница не включается", workCenter("WC-001", mondayShift(), window), at(5, 11, 0), false},
		{"окон нет", workCenter("WC-001", mondayShift()), at(5, 10, 0), false},
		{
			"несколько окон, момент в одном из них",
			workCenter("WC-001", mondayShift(),
				domain.MaintenanceWindow{StartDate: at(5, 7, 0), EndDate: at(5, 8, 0)},
				window,
			),
			at(5, 10, 0),
			true,
		},
		{
			"вне всех окон",
			workCenter("WC-001", mondayShift(),
				domain.MaintenanceWindow{StartDate: at(5, 7, 0), EndDate: at(5, 8, 0)},
				window,
			),
			at(5, 12, 0),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInMaintenanceWindow(tt.wc, tt.at); got != tt.want {
				t.Errorf("IsInMaintenanceWindow(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	wc := workCenter("WC-001", mondayShift(),
		domain.MaintenanceWindow{StartDate: at(5, 9, 0), EndDate: at(5, 11, 0)})

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"в смене и без обслуживания", at(5, 8, 30), true},
		{"в смене, но обслуживание", at(5, 10, 0), false},
		{"вне смены", at(6, 8, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(wc, tt.at); got != tt.want {
				t.Errorf("IsAvailable(%v) = %v, want %v", tt.at, got, tt.want)
			}
			// isAvailable ⇔ isInShift ∧ ¬isInMaintenanceWindow
			composed := IsInShift(wc, tt.at) && !IsInMaintenanceWindow(wc, tt.at)
			if got := IsAvailable(wc, tt.at); got != composed {
				t.Errorf("IsAvailable(%v) = %v, composition gives %v", tt.at, got, composed)
			}
		})
	}
}

func TestNextAvailableMoment_AlreadyAvailable(t *testing.T) {
	wc := workCenter("WC-001", mondayShift())

	input := at(5, 9, 0)
	if got := NextAvailableMoment(wc, input); !got.Equal(input) {
		t.Errorf("expected input unchanged, got %v", got)
	}
}

func TestNextAvailableMoment_BeforeShift(t *testing.T) {
	wc := workCenter("WC-001", mondayShift())

	// Понедельник 07:00 — до начала смены
	got := NextAvailableMoment(wc, at(5, 7, 0))
	if want := at(5, 8, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextAvailableMoment_AfterShiftEnds(t *testing.T) {
	wc := workCenter("WC-001", []domain.Shift{
		{DayOfWeek: 1, StartHour: 8, EndHour: 17},
		{DayOfWeek: 2, StartHour: 8, EndHour: 17},
	})

	// Понедельник 18:00 — смена кончилась, следующая во вторник 08:00
	got := NextAvailableMoment(wc, at(5, 18, 0))
	if want := at(6, 8, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextAvailableMoment_SkipsMaintenance(t *testing.T) {
	wc := workCenter("WC-001", mondayShift(),
		domain.MaintenanceWindow{StartDate: at(5, 10, 0), EndDate: at(5, 12, 0)})

	// 10:30 — в смене, но под обслуживанием; доступность с 12:00
	got := NextAvailableMoment(wc, at(5, 10, 30))
	if want := at(5, 12, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextAvailableMoment_MaintenanceAcrossDays(t *testing.T) {
	wc := workCenter("WC-001",
		[]domain.Shift{
			{DayOfWeek: 1, StartHour: 8, EndHour: 17},
			{DayOfWeek: 2, StartHour: 8, EndHour: 10},
		},
		// Обслуживание с понедельника 13:00 до вторника 08:30
		domain.MaintenanceWindow{StartDate: at(5, 13, 0), EndDate: at(6, 8, 30)},
	)

	// Понедельник 14:00 — под обслуживанием; конец окна 08:30 попадает
	// во вторничную смену 08:00–10:00
	got := NextAvailableMoment(wc, at(5, 14, 0))
	if want := at(6, 8, 30); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextAvailableMoment_JumpsToNextWeek(t *testing.T) {
	wc := workCenter("WC-001", []domain.Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 12}})

	// Понедельник 13:00 — единственная смена уже прошла, ждём неделю
	got := NextAvailableMoment(wc, at(5, 13, 0))
	if want := at(12, 8, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextAvailableMoment_Idempotent(t *testing.T) {
	wc := workCenter("WC-001", mondayShift(),
		domain.MaintenanceWindow{StartDate: at(5, 9, 0), EndDate: at(5, 11, 0)})

	first := NextAvailableMoment(wc, at(5, 9, 30))
	second := NextAvailableMoment(wc, first)
	if !second.Equal(first) {
		t.Errorf("expected fixed point, got %v after %v", second, first)
	}
}

func TestAddWorkingMinutes_ZeroDuration(t *testing.T) {
	wc := workCenter("WC-001", mondayShift())

	// Нулевая длительность — вход не меняется даже вне смены
	input := at(5, 7, 0)
	if got := AddWorkingMinutes(wc, input, 0); !got.Equal(input) {
		t.Errorf("expected input unchanged, got %v", got)
	}
}

func TestAddWorkingMinutes_WithinShift(t *testing.T) {
	wc := workCenter("WC-001", mondayShift())

	got := AddWorkingMinutes(wc, at(5, 8, 0), 120)
	if want := at(5, 10, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAddWorkingMinutes_PausesThroughMaintenance(t *testing.T) {
	wc := workCenter("WC-001", mondayShift(),
		domain.MaintenanceWindow{StartDate: at(5, 9, 0), EndDate: at(5, 10, 0)})

	// 30 минут до окна, окно не считается работой, 30 минут после
	got := AddWorkingMinutes(wc, at(5, 8, 30), 60)
	if want := at(5, 10, 30); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAddWorkingMinutes_SpansShiftEnd(t *testing.T) {
	wc := workCenter("WC-001", []domain.Shift{
		{DayOfWeek: 1, StartHour: 8, EndHour: 12},
		{DayOfWeek: 2, StartHour: 8, EndHour: 12},
	})

	// Час в понедельник 11:00–12:00, оставшийся час — вторник с 08:00
	got := AddWorkingMinutes(wc, at(5, 11, 0), 120)
	if want := at(6, 9, 0); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
