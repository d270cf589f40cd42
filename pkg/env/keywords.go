package env

var reservedC11 = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
	"_Alignas", "_Alignof", "_Atomic", "_Bool", "_Complex", "_Generic",
	"_Imaginary", "_Noreturn", "_Static_assert", "_Thread_local",
	// ISO/IEC TS 18661
	"_Float16", "_Float32", "_Float64", "_Float128",
	"_Float32x", "_Float64x", "_Float128x",
	"_Decimal32", "_Decimal64", "_Decimal128", "_Decimal64x", "_Decimal128x",
}

var reservedGNU = []string{
	"__alignof", "__alignof__", "asm", "__asm", "__asm__",
	"__attribute", "__attribute__", "__builtin_offsetof", "__builtin_va_arg",
	"__complex", "__complex__", "__const", "__const__", "__extension__",
	"__inline", "__inline__", "__label__", "__restrict", "__restrict__",
	"__signed", "__signed__", "__thread", "typeof", "__typeof", "__typeof__",
	"__volatile", "__volatile__",
}

var reservedClang = []string{
	"_Nonnull", "_Nullable", "_Null_unspecified",
}
