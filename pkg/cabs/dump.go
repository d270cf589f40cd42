package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Dumper prints a tree one node per line: indentation of four spaces per
// depth, the node kind, then its primitive fields. It is a Visitor; use
// Fdump or Sdump to print a whole tree.
type Dumper[N Name] struct {
	w     io.Writer
	names Interner[N]
	depth int
}

// NewDumper returns a Dumper writing to w. Identifier text is recovered
// through names.
func NewDumper[N Name](w io.Writer, names Interner[N]) *Dumper[N] {
	return &Dumper[N]{w: w, names: names}
}

// Fdump writes the listing of root to w. See Walk for accepted roots.
func Fdump[N Name](w io.Writer, names Interner[N], root any) {
	Walk[N](NewDumper(w, names), root)
}

// Sdump returns the listing of root.
func Sdump[N Name](names Interner[N], root any) string {
	var sb strings.Builder
	Fdump(&sb, names, root)
	return sb.String()
}

func (d *Dumper[N]) Visit(item Item) Visitor {
	fmt.Fprintf(d.w, "%s%s", strings.Repeat("    ", d.depth), item.Kind)
	d.fields(item)
	fmt.Fprintln(d.w)
	if item.Kind == KindAvailabilityAttribute {
		// Clauses are listed by the Printer only.
		return nil
	}
	return &Dumper[N]{w: d.w, names: d.names, depth: d.depth + 1}
}

func (d *Dumper[N]) field(s any) {
	fmt.Fprintf(d.w, " %v", s)
}

func (d *Dumper[N]) fieldQuoted(s string) {
	fmt.Fprintf(d.w, " \"%s\"", escape(s))
}

func (d *Dumper[N]) fields(item Item) {
	switch v := item.Value.(type) {
	case Identifier[N]:
		if item.Kind == KindIdentifier {
			d.fieldQuoted(d.names.Recover(v.Name))
		}
		return
	case Character:
		if item.Kind == KindConstant {
			d.field("Character")
			d.field(string(v))
		}
		return
	}

	switch item.Kind {
	case KindInteger:
		d.fieldQuoted(item.Value.(Integer).Number)
	case KindFloat:
		d.fieldQuoted(item.Value.(Float).Number)
	case KindIntegerSuffix:
		s := item.Value.(IntegerSuffix)
		d.field(s.Unsigned)
		d.field(s.Imaginary)
	case KindFloatSuffix:
		d.field(item.Value.(FloatSuffix).Imaginary)
	case KindFloatFormat:
		if f := item.Value.(FloatFormat); f.Kind != FormatTS18661 {
			d.field(f.Kind)
		}
	case KindTS18661FloatType:
		d.field(item.Value.(TS18661FloatType).Width)
	case KindStringLiteral:
		lit := item.Value.(StringLiteral)
		parts := make([]string, len(lit))
		for i, p := range lit {
			parts[i] = "\"" + escape(p) + "\""
		}
		fmt.Fprintf(d.w, " [%s]", strings.Join(parts, ", "))
	case KindIntegerBase, KindIntegerSize, KindFloatBase, KindMemberOperator,
		KindUnaryOperator, KindBinaryOperator, KindStorageClassSpecifier,
		KindTS18661FloatFormat, KindStructKind, KindTypeQualifier,
		KindFunctionSpecifier, KindEllipsis:
		d.field(item.Value)
	case KindTypeSpecifier:
		switch t := item.Value.(type) {
		case BasicType:
			d.field(t)
		case *AtomicType[N]:
			d.field("Atomic")
		case TypedefName[N]:
			d.field("TypedefName")
		}
	case KindDeclaratorKind:
		if _, ok := item.Value.(AbstractDeclarator); ok {
			d.field("Abstract")
		}
	case KindDerivedDeclarator:
		switch item.Value.(type) {
		case PointerDeclarator:
			d.field("Pointer")
		case KRFunctionDeclarator[N]:
			d.field("KRFunction")
		case BlockDeclarator:
			d.field("Block")
		}
	case KindArraySize:
		d.field(item.Value.(ArraySize).Kind)
	case KindStatement:
		switch item.Value.(type) {
		case CompoundStatement:
			d.field("Compound")
		case GotoStatement[N]:
			d.field("Goto")
		case ContinueStatement:
			d.field("Continue")
		case BreakStatement:
			d.field("Break")
		case ReturnStatement:
			d.field("Return")
		}
	case KindOffsetMember:
		switch item.Value.(type) {
		case OffsetMemberField[N]:
			d.field("Member")
		case OffsetMemberIndirect[N]:
			d.field("IndirectMember")
		}
	case KindLabel:
		if _, ok := item.Value.(DefaultLabel); ok {
			d.field("Default")
		}
	case KindForInitializer:
		if _, ok := item.Value.(ForEmpty); ok {
			d.field("Empty")
		}
	case KindAttribute:
		d.fieldQuoted(item.Value.(*Attribute).Name.Value)
	}
}

func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\'' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r >= ' ' && r <= '~':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "\\u{%04x}", r)
		}
	}
	return sb.String()
}
