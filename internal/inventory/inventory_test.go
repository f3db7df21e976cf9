package inventory

import (
	"errors"
	"testing"

	"github.com/mmeshcher/mercado-system/internal/model"
)

func holdings(pairs ...any) []model.Holding {
	var res []model.Holding
	for i := 0; i < len(pairs); i += 2 {
		res = append(res, model.Holding{
			BienID:   pairs[i].(string),
			Cantidad: pairs[i+1].(int),
		})
	}
	return res
}

func TestAdd_MergesExistingEntry(t *testing.T) {
	list := holdings("g1", 2)

	list, err := Add(list, "g1", 3)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if len(list) != 1 {
		t.Fatalf("expected single entry after merge, got %d", len(list))
	}
	if list[0].Cantidad != 5 {
		t.Fatalf("Cantidad = %d, want 5", list[0].Cantidad)
	}
}

func TestAdd_AppendsNewEntryAtEnd(t *testing.T) {
	list := holdings("g1", 2, "g2", 1)

	list, err := Add(list, "g3", 4)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if list[2].BienID != "g3" || list[2].Cantidad != 4 {
		t.Fatalf("unexpected appended entry: %+v", list[2])
	}
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	for _, cantidad := range []int{0, -1, -100} {
		if _, err := Add(holdings("g1", 2), "g1", cantidad); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("Add(%d): expected ErrInvalidQuantity, got %v", cantidad, err)
		}
	}
}

func TestAdd_PreservesRelativeOrder(t *testing.T) {
	list := holdings("g1", 1, "g2", 1, "g3", 1)

	list, err := Add(list, "g2", 5)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	want := []string{"g1", "g2", "g3"}
	for i, id := range want {
		if list[i].BienID != id {
			t.Fatalf("order broken at %d: got %s, want %s", i, list[i].BienID, id)
		}
	}
}

func TestRemove_AbsentGoodIsNoop(t *testing.T) {
	list := holdings("g1", 2)
	cantidad := 1

	got, err := Remove(list, "missing", &cantidad)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(got) != 1 || got[0].Cantidad != 2 {
		t.Fatalf("list changed on absent removal: %+v", got)
	}
}

func TestRemove_NilQuantityRemovesEntry(t *testing.T) {
	list := holdings("g1", 2, "g2", 7)

	got, err := Remove(list, "g2", nil)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(got) != 1 || got[0].BienID != "g1" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestRemove_FloorsAtZero(t *testing.T) {
	// Запрос больше остатка удаляет позицию целиком, а не оставляет
	// отрицательное или нулевое количество.
	tests := []struct {
		name     string
		have     int
		remove   int
		wantGone bool
		wantLeft int
	}{
		{name: "more than held", have: 4, remove: 10, wantGone: true},
		{name: "exactly held", have: 4, remove: 4, wantGone: true},
		{name: "less than held", have: 4, remove: 1, wantLeft: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := holdings("g1", tt.have)

			got, err := Remove(list, "g1", &tt.remove)
			if err != nil {
				t.Fatalf("Remove error: %v", err)
			}

			if tt.wantGone {
				if len(got) != 0 {
					t.Fatalf("entry should be removed entirely, got %+v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Cantidad != tt.wantLeft {
				t.Fatalf("got %+v, want cantidad %d", got, tt.wantLeft)
			}
		})
	}
}

func TestRemove_RejectsNonPositiveQuantity(t *testing.T) {
	cantidad := 0
	if _, err := Remove(holdings("g1", 2), "g1", &cantidad); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	cantidad = -3
	if _, err := Remove(holdings("g1", 2), "g1", &cantidad); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestRemove_PreservesRelativeOrder(t *testing.T) {
	list := holdings("g1", 1, "g2", 5, "g3", 1)
	cantidad := 2

	got, err := Remove(list, "g2", &cantidad)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	want := []string{"g1", "g2", "g3"}
	for i, id := range want {
		if got[i].BienID != id {
			t.Fatalf("order broken at %d: got %s, want %s", i, got[i].BienID, id)
		}
	}
	if got[1].Cantidad != 3 {
		t.Fatalf("g2 cantidad = %d, want 3", got[1].Cantidad)
	}
}

func TestHas(t *testing.T) {
	list := holdings("g1", 10, "g2", 1)

	tests := []struct {
		name     string
		required []model.Holding
		want     bool
	}{
		{name: "all sufficient", required: holdings("g1", 10, "g2", 1), want: true},
		{name: "insufficient quantity", required: holdings("g1", 11), want: false},
		{name: "missing good", required: holdings("g9", 1), want: false},
		{name: "empty requirement", required: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Has(list, tt.required); got != tt.want {
				t.Fatalf("Has = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	list := holdings("g1", 2)
	clone := Clone(list)

	clone[0].Cantidad = 99
	if list[0].Cantidad != 2 {
		t.Fatalf("clone mutation leaked into original: %+v", list)
	}
}
