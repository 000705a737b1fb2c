package selection

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/r3d"
)

type Action int

const (
	ActionNone Action = iota
	ActionParent
	ActionFirstChild
	ActionNextSibling
	ActionPreviousSibling
	ActionRotate
	ActionToggleOverlay
	ActionReset
	// rebuild the canonical view, handled by the session
	ActionProject
)

var actionNames = map[Action]string{
	ActionParent:          "parent",
	ActionFirstChild:      "child",
	ActionNextSibling:     "next",
	ActionPreviousSibling: "prev",
	ActionRotate:          "rotate",
	ActionToggleOverlay:   "overlay",
	ActionReset:           "reset",
	ActionProject:         "project",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return ActionNone, errors.Errorf("Unknown command %q", s)
}

// Command is one logical input. Axis and Angle (radians) are used by ActionRotate only.
type Command struct {
	Action Action
	Axis   r3d.Axis
	Angle  float32
}

func (c Command) String() string {
	if c.Action == ActionRotate {
		return fmt.Sprintf("rotate %v %v", c.Axis, c.Angle)
	}
	return c.Action.String()
}

func Rotate(axis r3d.Axis, angle float32) Command {
	return Command{Action: ActionRotate, Axis: axis, Angle: angle}
}
