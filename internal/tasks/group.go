package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/timeline/internal/model"
)

// Filter selects how the task list is grouped.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterTodo  Filter = Filter(model.StatusTodo)
	FilterDoing Filter = Filter(model.StatusDoing)
	FilterDone  Filter = Filter(model.StatusDone)
)

// ParseFilter resolves a filter name. The empty string means FilterAll.
func ParseFilter(name string) (Filter, error) {
	switch f := Filter(name); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterTodo, FilterDoing, FilterDone:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, todo, doing or done)", name)
}

// groupOrder lists the status sections for each focused filter.
var groupOrder = map[Filter][]model.Status{
	FilterTodo:  {model.StatusTodo, model.StatusDoing, model.StatusDone},
	FilterDoing: {model.StatusDoing, model.StatusTodo, model.StatusDone},
	FilterDone:  {model.StatusDone, model.StatusTodo, model.StatusDoing},
}

// Group is one section of the task list. Status is empty for FilterAll.
type Group struct {
	Status model.Status
	Tasks  []model.Task
}

// Grouped returns the task list the way the footer shows it: FilterAll gives
// a single group, a status filter puts that status first and the other two
// after it. Within a group tasks are ordered by start date, tasks without a
// start last.
func (s *Store) Grouped(focus Filter) []Group {
	all := s.Tasks()

	order, ok := groupOrder[focus]
	if !ok {
		return []Group{{Tasks: sortByStart(all)}}
	}

	groups := make([]Group, 0, len(order))
	for _, status := range order {
		var members []model.Task
		for _, t := range all {
			if t.Status == status {
				members = append(members, t)
			}
		}
		groups = append(groups, Group{Status: status, Tasks: sortByStart(members)})
	}
	return groups
}

func sortByStart(tasks []model.Task) []model.Task {
	if tasks == nil {
		tasks = []model.Task{}
	}
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		sa, sb := strings.TrimSpace(a.Start), strings.TrimSpace(b.Start)
		switch {
		case sa == sb:
			return 0
		case sa == "":
			return 1
		case sb == "":
			return -1
		}
		return strings.Compare(sa, sb)
	})
	return tasks
}
