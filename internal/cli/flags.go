package cli

import (
	"strconv"
	"strings"

	"todos-cli/internal/model"

	"github.com/spf13/pflag"
)

// sortFlag validates the method key when the flag is parsed.
type sortFlag struct{ m *model.SortMethod }

func (f sortFlag) String() string {
	if f.m == nil {
		return ""
	}
	return string(*f.m)
}

func (f sortFlag) Set(s string) error {
	m, err := model.ParseSortMethod(s)
	if err != nil {
		return err
	}
	*f.m = m
	return nil
}

func (f sortFlag) Type() string { return "sort-method" }

type filterFlag struct{ m *model.FilterMethod }

func (f filterFlag) String() string {
	if f.m == nil {
		return ""
	}
	return string(*f.m)
}

func (f filterFlag) Set(s string) error {
	m, err := model.ParseFilterMethod(s)
	if err != nil {
		return err
	}
	*f.m = m
	return nil
}

func (f filterFlag) Type() string { return "filter-method" }

type priorityFlag struct{ p *model.Priority }

func (f priorityFlag) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.Itoa(int(*f.p))
}

func (f priorityFlag) Set(s string) error {
	p, err := model.ParsePriority(s)
	if err != nil {
		return err
	}
	*f.p = p
	return nil
}

func (f priorityFlag) Type() string { return "priority" }

var (
	_ pflag.Value = sortFlag{}
	_ pflag.Value = filterFlag{}
	_ pflag.Value = priorityFlag{}
)

func sortUsage() string {
	keys := make([]string, 0, len(model.ValidSortMethods()))
	for _, m := range model.ValidSortMethods() {
		keys = append(keys, string(m))
	}
	return "Sort method (" + strings.Join(keys, "|") + ")"
}

func filterUsage() string {
	keys := make([]string, 0, len(model.ValidFilterMethods()))
	for _, m := range model.ValidFilterMethods() {
		keys = append(keys, string(m))
	}
	return "Filter method (" + strings.Join(keys, "|") + ")"
}
