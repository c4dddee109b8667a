package kind

// Kind is a raw syntactic node kind, as assigned by a [method.Extractor].
// The set of raw kinds is closed: every value an extractor can legally
// produce is listed below. Kind is intentionally finer-grained than
// [Category] — e.g. IntLiteral and FloatLiteral are distinct kinds that
// both belong to CategoryNumericLiteral — so that two kinds can be
// compared for exact equality cheaply (no allocation, no lookup) before
// falling back to the soft category distance.
type Kind string

// Literals.
const (
	KindIntLiteral       Kind = "IntLiteral"
	KindFloatLiteral     Kind = "FloatLiteral"
	KindImaginaryLiteral Kind = "ImaginaryLiteral"
	KindStringLiteral    Kind = "StringLiteral"
	KindRuneLiteral      Kind = "RuneLiteral"
	KindBoolLiteral      Kind = "BoolLiteral"
	KindNilLiteral       Kind = "NilLiteral"
)

// Identifiers.
const (
	KindIdentifier          Kind = "Identifier"
	KindQualifiedIdentifier Kind = "QualifiedIdentifier"
	KindGenericIdentifier   Kind = "GenericIdentifier"
	KindReceiverIdentifier  Kind = "ReceiverIdentifier"
)

// Arithmetic operators.
const (
	KindAdditive        Kind = "Additive"
	KindMultiplicative  Kind = "Multiplicative"
	KindUnaryArithmetic Kind = "UnaryArithmetic"
	KindIncDec          Kind = "IncDec"
)

// Logical operators.
const (
	KindBinaryLogical Kind = "BinaryLogical"
	KindUnaryLogical  Kind = "UnaryLogical"
)

// Bitwise operators.
const (
	KindBinaryBitwise Kind = "BinaryBitwise"
	KindUnaryBitwise  Kind = "UnaryBitwise"
	KindShift         Kind = "Shift"
)

// Comparisons.
const (
	KindEquality   Kind = "Equality"
	KindRelational Kind = "Relational"
	KindTypeCheck  Kind = "TypeCheck"
)

// Assignment.
const (
	KindSimpleAssign   Kind = "SimpleAssign"
	KindCompoundAssign Kind = "CompoundAssign"
	KindShortVarAssign Kind = "ShortVarAssign"
)

// Control flow.
const (
	KindForLoop        Kind = "ForLoop"
	KindRangeLoop      Kind = "RangeLoop"
	KindWhileLoop      Kind = "WhileLoop"
	KindIf             Kind = "If"
	KindConditionalExpr Kind = "ConditionalExpr"
	KindSwitch         Kind = "Switch"
	KindTypeSwitch     Kind = "TypeSwitch"
	KindSelect         Kind = "Select"
	KindCase           Kind = "Case"
	KindElse           Kind = "Else"
	KindBreak          Kind = "Break"
	KindContinue       Kind = "Continue"
	KindReturn         Kind = "Return"
	KindGoto           Kind = "Goto"
	KindLabel          Kind = "Label"
	KindDefer          Kind = "Defer"
	KindPanic          Kind = "Panic"
	KindRecover        Kind = "Recover"
	KindGo             Kind = "Go"
)

// Access and invocation.
const (
	KindCall            Kind = "Call"
	KindPropertyAccess  Kind = "PropertyAccess"
	KindElementAccess   Kind = "ElementAccess"
)

// Creation.
const (
	KindCompositeLit Kind = "CompositeLit"
	KindMapLit       Kind = "MapLit"
	KindSliceLit     Kind = "SliceLit"
	KindArrayLit     Kind = "ArrayLit"
	KindMakeCall     Kind = "MakeCall"
	KindNewCall      Kind = "NewCall"
)

// Type operations.
const (
	KindTypeConversion Kind = "TypeConversion"
	KindTypeAssertion  Kind = "TypeAssertion"
)

// Declarations.
const (
	KindVarDecl   Kind = "VarDecl"
	KindConstDecl Kind = "ConstDecl"
	KindTypeDecl  Kind = "TypeDecl"
	KindFuncDecl  Kind = "FuncDecl"
	KindParamDecl Kind = "ParamDecl"
	KindFieldDecl Kind = "FieldDecl"
)

// Structural / grouping nodes that carry no independent cost beyond their
// children (blocks, parenthesization, the method root itself).
const (
	KindBlock     Kind = "Block"
	KindParen     Kind = "Paren"
	KindMethod    Kind = "Method"
	KindEmpty     Kind = "Empty"
	KindUnaryStar Kind = "UnaryStar"
	KindUnaryAddr Kind = "UnaryAddr"
)

// KindUnknown is assigned when an extractor encounters a construct it does
// not otherwise classify. It must never be dropped silently — every node
// must carry a Kind — but its category distance to everything else is
// maximal.
const KindUnknown Kind = "Unknown"

// categoryOf maps every raw Kind to its semantic Category. This map must
// be total: [CategoryOf] returns CategoryUnknown for a missing entry, so a
// new Kind added without a mapping would silently degrade distances;
// TestCategoryOf_IsTotalOverAllKinds is what makes that fail loudly.
var categoryOf = map[Kind]Category{
	KindIntLiteral:       CategoryNumericLiteral,
	KindFloatLiteral:      CategoryNumericLiteral,
	KindImaginaryLiteral: CategoryNumericLiteral,
	KindStringLiteral:    CategoryStringLiteral,
	KindRuneLiteral:      CategoryCharLiteral,
	KindBoolLiteral:      CategoryBoolLiteral,
	KindNilLiteral:       CategoryNullLiteral,

	KindIdentifier:          CategorySimpleIdentifier,
	KindReceiverIdentifier:  CategoryThisBaseIdentifier,
	KindQualifiedIdentifier: CategoryQualifiedIdentifier,
	KindGenericIdentifier:   CategoryGenericIdentifier,

	KindAdditive:        CategoryAdditiveOp,
	KindMultiplicative:  CategoryMultiplicativeOp,
	KindUnaryArithmetic: CategoryUnaryArithmeticOp,
	KindIncDec:          CategoryIncrementOp,

	KindBinaryLogical: CategoryBinaryLogicalOp,
	KindUnaryLogical:  CategoryUnaryLogicalOp,

	KindBinaryBitwise: CategoryBinaryBitwiseOp,
	KindUnaryBitwise:  CategoryUnaryBitwiseOp,
	KindShift:         CategoryShiftOp,

	KindEquality:   CategoryEqualityOp,
	KindRelational: CategoryRelationalOp,
	KindTypeCheck:  CategoryTypeCheckOp,

	KindSimpleAssign:   CategorySimpleAssignment,
	KindCompoundAssign: CategoryCompoundAssignment,
	KindShortVarAssign: CategorySimpleAssignment,

	KindForLoop:         CategoryLoopStatement,
	KindRangeLoop:       CategoryLoopStatement,
	KindWhileLoop:       CategoryLoopStatement,
	KindIf:               CategoryConditionalStatement,
	KindConditionalExpr: CategoryConditionalStatement,
	KindSwitch:          CategorySwitchStatement,
	KindTypeSwitch:      CategorySwitchStatement,
	KindSelect:          CategorySwitchStatement,
	KindCase:            CategorySwitchStatement,
	KindElse:            CategoryElseClause,
	KindBreak:           CategoryLoopControl,
	KindContinue:        CategoryLoopControl,
	KindReturn:          CategoryReturnStatement,
	KindGoto:            CategoryGotoStatement,
	KindLabel:           CategoryGotoStatement,
	// Go has no try/catch; defer+panic+recover is its closest analogue to
	// an exception-handling construct, so it is classified that way.
	KindDefer:   CategoryExceptionStatement,
	KindPanic:   CategoryExceptionStatement,
	KindRecover: CategoryExceptionStatement,
	KindGo:      CategoryStructural,

	KindCall:           CategoryMethodInvocation,
	KindPropertyAccess: CategoryPropertyAccess,
	KindElementAccess:  CategoryElementAccess,

	KindCompositeLit: CategoryObjectCreation,
	KindMapLit:       CategoryObjectCreation,
	KindNewCall:      CategoryObjectCreation,
	KindMakeCall:     CategoryObjectCreation,
	KindSliceLit:     CategoryArrayCreation,
	KindArrayLit:     CategoryArrayCreation,

	KindTypeConversion: CategoryTypeOperation,
	KindTypeAssertion:  CategoryTypeOperation,

	KindVarDecl:   CategoryDeclaration,
	KindConstDecl: CategoryDeclaration,
	KindTypeDecl:  CategoryDeclaration,
	KindFuncDecl:  CategoryDeclaration,
	KindParamDecl: CategoryDeclaration,
	KindFieldDecl: CategoryDeclaration,

	KindBlock:     CategoryStructural,
	KindParen:     CategoryStructural,
	KindMethod:    CategoryStructural,
	KindEmpty:     CategoryStructural,
	KindUnaryStar: CategoryUnaryArithmeticOp,
	KindUnaryAddr: CategoryUnaryArithmeticOp,

	KindUnknown: CategoryUnknown,
}

// CategoryOf returns the semantic category of a raw kind. Unmapped kinds
// resolve to CategoryUnknown rather than panicking in production builds;
// the exhaustiveness test in kind_test.go is what actually enforces
// totality during development.
func CategoryOf(k Kind) Category {
	if c, ok := categoryOf[k]; ok {
		return c
	}

	return CategoryUnknown
}

// AllKinds enumerates every raw kind in a fixed, stable order. The
// position of a kind in this slice is its numeric code (see [Code]),
// used by internal/fingerprint when hashing kind-only nodes.
var AllKinds = []Kind{
	KindIntLiteral, KindFloatLiteral, KindImaginaryLiteral, KindStringLiteral, KindRuneLiteral, KindBoolLiteral, KindNilLiteral,
	KindIdentifier, KindQualifiedIdentifier, KindGenericIdentifier, KindReceiverIdentifier,
	KindAdditive, KindMultiplicative, KindUnaryArithmetic, KindIncDec,
	KindBinaryLogical, KindUnaryLogical,
	KindBinaryBitwise, KindUnaryBitwise, KindShift,
	KindEquality, KindRelational, KindTypeCheck,
	KindSimpleAssign, KindCompoundAssign, KindShortVarAssign,
	KindForLoop, KindRangeLoop, KindWhileLoop, KindIf, KindConditionalExpr,
	KindSwitch, KindTypeSwitch, KindSelect, KindCase, KindElse,
	KindBreak, KindContinue, KindReturn, KindGoto, KindLabel,
	KindDefer, KindPanic, KindRecover, KindGo,
	KindCall, KindPropertyAccess, KindElementAccess,
	KindCompositeLit, KindMapLit, KindSliceLit, KindArrayLit, KindMakeCall, KindNewCall,
	KindTypeConversion, KindTypeAssertion,
	KindVarDecl, KindConstDecl, KindTypeDecl, KindFuncDecl, KindParamDecl, KindFieldDecl,
	KindBlock, KindParen, KindMethod, KindEmpty, KindUnaryStar, KindUnaryAddr,
	KindUnknown,
}

var kindCode = buildKindCode()

func buildKindCode() map[Kind]int {
	codes := make(map[Kind]int, len(AllKinds))
	for i, k := range AllKinds {
		codes[k] = i
	}

	return codes
}

// Code returns the stable numeric code for a raw kind, or -1 if k is not
// in the closed taxonomy.
func Code(k Kind) int {
	if c, ok := kindCode[k]; ok {
		return c
	}

	return -1
}
