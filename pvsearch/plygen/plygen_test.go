package plygen

import (
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/nullmove/pvsearch/pvsearch/history"
)

func TestOrderPutsPrincipalPlyFirst(t *testing.T) {
	is := is.New(t)
	hist := history.New[string]()
	candidates := []string{"a", "b", "c", "d"}
	pv := "c"

	ordered := Order(candidates, &pv, hist)
	is.Equal(ordered[0], "c")
	is.Equal(len(ordered), len(candidates)) // pv not duplicated
}

func TestOrderWithoutPrincipalPlyCoversEverything(t *testing.T) {
	is := is.New(t)
	hist := history.New[string]()
	candidates := []string{"a", "b", "c"}

	ordered := Order(candidates, nil, hist)
	is.Equal(len(ordered), len(candidates))

	got := append([]string{}, ordered...)
	sort.Strings(got)
	want := append([]string{}, candidates...)
	sort.Strings(want)
	is.Equal(got, want)
}

func TestOrderRespectsHistoryDescending(t *testing.T) {
	is := is.New(t)
	hist := history.New[string]()
	hist.Add("a", 1)
	hist.Add("b", 100)
	hist.Add("c", 10)
	candidates := []string{"a", "b", "c"}

	ordered := Order(candidates, nil, hist)
	is.Equal(ordered, []string{"b", "c", "a"})
}

func TestOrderNeverRepeatsPrincipalPly(t *testing.T) {
	is := is.New(t)
	hist := history.New[string]()
	candidates := []string{"a", "b", "c"}
	pv := "b"

	ordered := Order(candidates, &pv, hist)
	count := 0
	for _, p := range ordered {
		if p == "b" {
			count++
		}
	}
	is.Equal(count, 1)
}
