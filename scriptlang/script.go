package scriptlang

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/r3d"
	"github.com/mogaika/figure_viewer/selection"
)

const (
	// commands one repeat statement may expand to, nested repeats included
	MaxRepeat = 360
	// commands one script may compile to
	MaxCommands = 4096
)

type Statement struct {
	Line    int
	Name    string
	Args    []interface{}
	Comment string
}

func (st *Statement) String() string {
	s := st.Name
	for _, a := range st.Args {
		s += fmt.Sprint(" ", a)
	}
	return s
}

func (st *Statement) errorf(format string, args ...interface{}) error {
	return errors.Errorf("Line %v (%s): %s", st.Line, st.Name, fmt.Sprintf(format, args...))
}

func (st *Statement) word(i int) (string, error) {
	if i >= len(st.Args) {
		return "", st.errorf("missing argument #%d", i)
	}
	s, ok := st.Args[i].(string)
	if !ok {
		return "", st.errorf("argument #%d must be a word, got %v", i, st.Args[i])
	}
	return s, nil
}

func (st *Statement) number(i int) (float32, error) {
	if i >= len(st.Args) {
		return 0, st.errorf("missing argument #%d", i)
	}
	f, ok := st.Args[i].(float32)
	if !ok {
		return 0, st.errorf("argument #%d must be a number, got %v", i, st.Args[i])
	}
	return f, nil
}

// Compile turns statements into commands.
//
//	parent | child | next | prev | overlay | reset | project
//	rotate <x|y|z> <degrees>
//	repeat <count> <statement>
func Compile(statements []*Statement) ([]selection.Command, error) {
	result := make([]selection.Command, 0, len(statements))
	for _, st := range statements {
		cmds, err := compileStatement(st)
		if err != nil {
			return nil, err
		}
		if len(result)+len(cmds) > MaxCommands {
			return nil, st.errorf("script expands to more than %d commands", MaxCommands)
		}
		result = append(result, cmds...)
	}
	return result, nil
}

func compileStatement(st *Statement) ([]selection.Command, error) {
	switch st.Name {
	case "rotate":
		if len(st.Args) != 2 {
			return nil, st.errorf("expected axis and degrees")
		}
		axisName, err := st.word(0)
		if err != nil {
			return nil, err
		}
		axis, err := r3d.ParseAxis(axisName)
		if err != nil {
			return nil, st.errorf("%v", err)
		}
		degrees, err := st.number(1)
		if err != nil {
			return nil, err
		}
		return []selection.Command{selection.Rotate(axis, mgl32.DegToRad(degrees))}, nil
	case "repeat":
		count, err := st.number(0)
		if err != nil {
			return nil, err
		}
		if count < 0 || count > MaxRepeat || count != float32(int(count)) {
			return nil, st.errorf("bad repeat count %v", count)
		}
		inner, err := st.word(1)
		if err != nil {
			return nil, err
		}
		cmds, err := compileStatement(&Statement{Line: st.Line, Name: inner, Args: st.Args[2:]})
		if err != nil {
			return nil, err
		}
		if total := len(cmds) * int(count); total > MaxRepeat {
			return nil, st.errorf("repeat expands to %d commands, limit %d", total, MaxRepeat)
		}
		result := make([]selection.Command, 0, len(cmds)*int(count))
		for i := 0; i < int(count); i++ {
			result = append(result, cmds...)
		}
		return result, nil
	default:
		action, err := selection.ParseAction(st.Name)
		if err != nil || action == selection.ActionRotate {
			return nil, st.errorf("unknown command")
		}
		if len(st.Args) != 0 {
			return nil, st.errorf("takes no arguments")
		}
		return []selection.Command{{Action: action}}, nil
	}
}

// ParseCommands parses and compiles a script
func ParseCommands(text []byte) ([]selection.Command, error) {
	statements, err := ParseScript(text)
	if err != nil {
		return nil, err
	}
	return Compile(statements)
}

func RenderScriptLines(statements []*Statement) []string {
	result := make([]string, 0, len(statements))
	for _, st := range statements {
		if st.Comment == "" {
			result = append(result, st.String())
		} else {
			result = append(result, fmt.Sprintf("%-20s // %s", st.String(), st.Comment))
		}
	}
	return result
}

func RenderScript(statements []*Statement) string {
	return strings.Join(RenderScriptLines(statements), "\n")
}
