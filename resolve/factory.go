package resolve

import (
	"reflect"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/oid"
)

// ArrayFactory recognizes any application type []U and wraps the chain's
// recursive resolution of U into a convert.Array[U] targeting the wire
// array type the catalog reports for U's resolved wire type (spec §4.5
// step 5, "Factory path").
//
// It is registered on every DefaultResolver by default; callers needing a
// different element wire_type_id for the same Go slice type can resolve
// the element explicitly and call convert.NewArray directly instead of
// going through the chain.
type ArrayFactory struct{}

func (ArrayFactory) TryResolve(chain *DefaultResolver, appType reflect.Type, wireID oid.WireTypeId, catalog *oid.TypeCatalog) (*ConverterInfo, error) {
	if appType == nil || appType.Kind() != reflect.Slice {
		return nil, nil
	}
	elemType := appType.Elem()
	if elemType.Kind() == reflect.Uint8 {
		// []byte already has its own direct converter (builtin.Bytea); it
		// is not an array-of-int2 in this module's domain.
		return nil, nil
	}

	// wireID, when present here, is the *array* wire type (e.g. "_int4");
	// there is no array->element map, so the element is always resolved
	// from elemType's own default pair rather than from wireID.
	elementInfo, err := chain.Resolve(elemType, nil, catalog)
	if err != nil {
		return nil, err
	}

	arrayWire := elementInfo.PreferredWireType
	if catalog != nil && arrayWire.IsName() {
		if a, err := catalog.ArrayOf(arrayWire.NameValue()); err == nil {
			arrayWire = a
		} else {
			return nil, converr.Wrap(err, converr.UnknownType, "", appType.String(), nil)
		}
	}

	converter, err := boxArrayConverter(appType, elementInfo, arrayWire)
	if err != nil {
		return nil, err
	}

	return &ConverterInfo{
		Converter:         converter,
		PreferredWireType: arrayWire,
		PreferredFormat:   elementInfo.PreferredFormat,
	}, nil
}

// boxArrayConverter builds a boxed convert.Array[U] for the element type
// carried by elementInfo, dispatching over a fixed set of element types:
// the signed and unsigned integers (except uint8), bool, float32, float64
// and string. Any other element type (e.g. uuid.UUID, decimal.Decimal,
// time.Time, []byte) fails with converr.ResolutionFailed. This is the same
// switch-on-concrete-type shape the teacher uses in Int2Codec.PlanScan,
// required here because Go cannot instantiate Array[U] with a U chosen at
// runtime.
func boxArrayConverter(sliceType reflect.Type, elementInfo *ConverterInfo, arrayWire oid.WireTypeId) (BoxedConverter, error) {
	elemType := sliceType.Elem()
	switch elemType {
	case typeOf[int8]():
		return boxArray[int8](elementInfo, arrayWire)
	case typeOf[int16]():
		return boxArray[int16](elementInfo, arrayWire)
	case typeOf[int32]():
		return boxArray[int32](elementInfo, arrayWire)
	case typeOf[int64]():
		return boxArray[int64](elementInfo, arrayWire)
	case typeOf[int]():
		return boxArray[int](elementInfo, arrayWire)
	case typeOf[uint16]():
		return boxArray[uint16](elementInfo, arrayWire)
	case typeOf[uint32]():
		return boxArray[uint32](elementInfo, arrayWire)
	case typeOf[uint64]():
		return boxArray[uint64](elementInfo, arrayWire)
	case typeOf[uint]():
		return boxArray[uint](elementInfo, arrayWire)
	case typeOf[bool]():
		return boxArray[bool](elementInfo, arrayWire)
	case typeOf[float32]():
		return boxArray[float32](elementInfo, arrayWire)
	case typeOf[float64]():
		return boxArray[float64](elementInfo, arrayWire)
	case typeOf[string]():
		return boxArray[string](elementInfo, arrayWire)
	default:
		return nil, converr.New(converr.ResolutionFailed, arrayWire.String(), sliceType.String(), nil)
	}
}

func boxArray[U any](elementInfo *ConverterInfo, arrayWire oid.WireTypeId) (BoxedConverter, error) {
	inner := Unbox[U](elementInfo.Converter)
	arr := convert.NewArray[U](inner, elementInfo.PreferredWireType)
	return Box[[]U](arr), nil
}
