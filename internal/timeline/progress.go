package timeline

import (
	"math"

	"github.com/roach88/timeline/internal/model"
)

// Progress returns the share of completed checklist items as a rounded
// percentage. An empty checklist is 0.
func Progress(checklist []model.ChecklistItem) int {
	if len(checklist) == 0 {
		return 0
	}
	done := 0
	for _, item := range checklist {
		if item.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(checklist)) * 100))
}

// DeriveStatus maps a progress percentage to a status.
func DeriveStatus(progress int) model.Status {
	switch {
	case progress <= 0:
		return model.StatusTodo
	case progress >= 100:
		return model.StatusDone
	default:
		return model.StatusDoing
	}
}

// StatusOf derives the status of a checklist directly.
func StatusOf(checklist []model.ChecklistItem) model.Status {
	return DeriveStatus(Progress(checklist))
}
