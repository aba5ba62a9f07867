package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeActive Type = "active"
	TypeDelete Type = "delete"
	TypeRename Type = "rename"
	TypeSet    Type = "set"
	TypeDone   Type = "done"
	TypeUndo   Type = "undo"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// ActiveArgs and DeleteArgs address a quest by its 1-based position in
// the quests list, the way the list screen numbers them.
type ActiveArgs struct {
	Index int
}

type DeleteArgs struct {
	Index int
}

type RenameArgs struct {
	Index int
	Title string
}

// SetArgs targets a goal of the active quest by 1-based position and
// sets its current value verbatim (the unbounded edit-flow set).
type SetArgs struct {
	GoalIndex int
	Value     int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Active *ActiveArgs
	Delete *DeleteArgs
	Rename *RenameArgs
	Set    *SetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeActive:
		return parseActive(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeRename:
		return parseRename(input, args)
	case TypeSet:
		return parseSet(input, args)
	case TypeDone:
		return Command{Type: TypeDone, Raw: input}, nil
	case TypeUndo:
		return Command{Type: TypeUndo, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseActive(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "active requires a quest number"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeActive, Raw: raw, Active: &ActiveArgs{Index: idx}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a quest number"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Index: idx}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a quest number and a title"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a title"}
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Index: idx, Title: title}}, nil
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a goal number and a value"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	value, convErr := strconv.Atoi(args[1])
	if convErr != nil || value < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid value: %s", args[1])}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{GoalIndex: idx, Value: value}}, nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid number: %s", s)}
	}
	return idx, nil
}
