package symtab

import (
	"fmt"
	"strconv"

	"github.com/kievzenit/snuplc/internal/lexer"
)

// Data is the compile-time value of a constant or an initialized global.
type Data interface {
	fmt.Stringer
	dataNode()
}

type IntegerData struct {
	Value int32
}

type LongintData struct {
	Value int64
}

type BooleanData struct {
	Value bool
}

type CharData struct {
	Value byte
}

type StringData struct {
	Value string
}

func (IntegerData) dataNode() {}
func (LongintData) dataNode() {}
func (BooleanData) dataNode() {}
func (CharData) dataNode()    {}
func (StringData) dataNode()  {}

func (d *IntegerData) String() string {
	return "[ data: " + strconv.FormatInt(int64(d.Value), 10) + " ]"
}

func (d *LongintData) String() string {
	return "[ data: " + strconv.FormatInt(d.Value, 10) + " ]"
}

func (d *BooleanData) String() string {
	return "[ data: " + strconv.FormatBool(d.Value) + " ]"
}

func (d *CharData) String() string {
	return "[ data: '" + lexer.Escape(lexer.CHAR, string([]byte{d.Value})) + "' ]"
}

func (d *StringData) String() string {
	return "[ data: \"" + lexer.Escape(lexer.STRING, d.Value) + "\" ]"
}
