package model

// PreludeNamespace holds the built-in shapes every model can target
const PreludeNamespace = "smithy.api"

// Prelude primitive shapes
var (
	String     = ShapeID{Namespace: PreludeNamespace, Name: "String"}
	Boolean    = ShapeID{Namespace: PreludeNamespace, Name: "Boolean"}
	Byte       = ShapeID{Namespace: PreludeNamespace, Name: "Byte"}
	Short      = ShapeID{Namespace: PreludeNamespace, Name: "Short"}
	Integer    = ShapeID{Namespace: PreludeNamespace, Name: "Integer"}
	Long       = ShapeID{Namespace: PreludeNamespace, Name: "Long"}
	Float      = ShapeID{Namespace: PreludeNamespace, Name: "Float"}
	Double     = ShapeID{Namespace: PreludeNamespace, Name: "Double"}
	BigInteger = ShapeID{Namespace: PreludeNamespace, Name: "BigInteger"}
	BigDecimal = ShapeID{Namespace: PreludeNamespace, Name: "BigDecimal"}
	Blob       = ShapeID{Namespace: PreludeNamespace, Name: "Blob"}
	Timestamp  = ShapeID{Namespace: PreludeNamespace, Name: "Timestamp"}
	Document   = ShapeID{Namespace: PreludeNamespace, Name: "Document"}

	// Unit is the "no input / no output" marker; loaders translate it to a zero id
	Unit = ShapeID{Namespace: PreludeNamespace, Name: "Unit"}
)

func preludeShapes() []*Shape {
	return []*Shape{
		{ID: String, Kind: KindString},
		{ID: Boolean, Kind: KindBoolean},
		{ID: Byte, Kind: KindByte},
		{ID: Short, Kind: KindShort},
		{ID: Integer, Kind: KindInteger},
		{ID: Long, Kind: KindLong},
		{ID: Float, Kind: KindFloat},
		{ID: Double, Kind: KindDouble},
		{ID: BigInteger, Kind: KindBigInteger},
		{ID: BigDecimal, Kind: KindBigDecimal},
		{ID: Blob, Kind: KindBlob},
		{ID: Timestamp, Kind: KindTimestamp},
		{ID: Document, Kind: KindDocument},
	}
}
