package services

import (
	"art-contest/internal/logger"

	"github.com/sirupsen/logrus"
)

// SideEffect is the outcome of a best-effort step that follows a primary write.
// A failed side effect is logged and never fails the caller.
type SideEffect struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

func (e SideEffect) OK() bool {
	return e.Err == nil
}

func runSideEffect(name string, fn func() error) SideEffect {
	return SideEffect{Name: name, Err: fn()}
}

func logSideEffects(operation string, fields logrus.Fields, effects []SideEffect) {
	for _, effect := range effects {
		if effect.OK() {
			continue
		}
		entry := logger.WithFields(fields).WithFields(logrus.Fields{
			"operation":   operation,
			"side_effect": effect.Name,
		})
		entry.Warnf("side effect failed: %v", effect.Err)
	}
}
