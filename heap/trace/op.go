package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// scannerInitialBufferSize is the initial buffer size for the script scanner.
	scannerInitialBufferSize = 4 * 1024

	// scannerMaxLineSize is the longest script line accepted.
	scannerMaxLineSize = 64 * 1024
)

// Kind identifies a script operation.
type Kind byte

const (
	OpMalloc  Kind = 'm'
	OpCalloc  Kind = 'c'
	OpRealloc Kind = 'r'
	OpFree    Kind = 'f'
)

func (k Kind) String() string {
	switch k {
	case OpMalloc:
		return "malloc"
	case OpCalloc:
		return "calloc"
	case OpRealloc:
		return "realloc"
	case OpFree:
		return "free"
	default:
		return fmt.Sprintf("Kind(%q)", byte(k))
	}
}

// arity is the number of integer operands each kind takes.
var arity = map[Kind]int{
	OpMalloc:  1,
	OpCalloc:  2,
	OpRealloc: 1,
	OpFree:    0,
}

// Op is one parsed script line.
type Op struct {
	Kind  Kind
	ID    string
	Count int // calloc element count
	Size  int // malloc/realloc size, calloc element size
	Line  int // 1-based source line
}

func (o Op) String() string {
	switch o.Kind {
	case OpCalloc:
		return fmt.Sprintf("c %s %d %d", o.ID, o.Count, o.Size)
	case OpFree:
		return fmt.Sprintf("f %s", o.ID)
	default:
		return fmt.Sprintf("%c %s %d", byte(o.Kind), o.ID, o.Size)
	}
}

// Parse reads a script. Errors wrap ErrSyntax and name the offending line.
func Parse(r io.Reader) ([]Op, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, scannerInitialBufferSize)
	scanner.Buffer(buf, scannerMaxLineSize)

	var ops []Op
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		op, err := parseFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, line+1, err)
	}
	return ops, nil
}

func parseFields(fields []string) (Op, error) {
	if len(fields[0]) != 1 {
		return Op{}, fmt.Errorf("unknown operation %q", fields[0])
	}
	kind := Kind(fields[0][0])
	n, ok := arity[kind]
	if !ok {
		return Op{}, fmt.Errorf("unknown operation %q", fields[0])
	}
	if len(fields) != 2+n {
		return Op{}, fmt.Errorf("%s takes an id and %d operand(s), got %d fields", kind, n, len(fields)-1)
	}

	op := Op{Kind: kind, ID: fields[1]}
	nums := make([]int, n)
	for i, f := range fields[2:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Op{}, fmt.Errorf("operand %q: %w", f, err)
		}
		if v < 0 {
			return Op{}, fmt.Errorf("operand %q is negative", f)
		}
		nums[i] = v
	}

	switch kind {
	case OpMalloc, OpRealloc:
		op.Size = nums[0]
	case OpCalloc:
		op.Count, op.Size = nums[0], nums[1]
	}
	return op, nil
}
