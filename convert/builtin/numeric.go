package builtin

import (
	"context"
	"math/big"

	"github.com/cockroachdb/apd"
	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
	"github.com/shopspring/decimal"
)

// numeric wire-format constants, grounded verbatim on
// github.com/jackc/pgx/v5/pgtype/numeric.go's nbase/pgNumeric* constants and
// its EncodeBinary/DecodeBinary pair, which this module's two numeric
// converters (NumericDecimal, NumericAPD) both delegate to after converting
// their application type to/from (coefficient *big.Int, exponent int32).
const nbase = 10000

var (
	big0       = big.NewInt(0)
	big1       = big.NewInt(1)
	big10      = big.NewInt(10)
	big100     = big.NewInt(100)
	big1000    = big.NewInt(1000)
	bigNBase   = big.NewInt(nbase)
	bigNBaseX2 = big.NewInt(nbase * nbase)
	bigNBaseX3 = big.NewInt(nbase * nbase * nbase)
	bigNBaseX4 = big.NewInt(nbase * nbase * nbase * nbase)
)

func numericEncodeBinary(buf []byte, coeff *big.Int, exp int32) []byte {
	var sign int16
	if coeff.Sign() < 0 {
		sign = 16384
	}

	absInt := new(big.Int).Abs(coeff)
	var wholePart, fracPart big.Int
	remainder := &big.Int{}

	normExp := exp
	switch exp % 4 {
	case 1, -3:
		normExp = exp - 1
		absInt.Mul(absInt, big10)
	case 2, -2:
		normExp = exp - 2
		absInt.Mul(absInt, big100)
	case 3, -1:
		normExp = exp - 3
		absInt.Mul(absInt, big1000)
	}

	if normExp < 0 {
		divisor := new(big.Int).Exp(big10, big.NewInt(int64(-normExp)), nil)
		wholePart.DivMod(absInt, divisor, &fracPart)
		fracPart.Add(&fracPart, divisor)
	} else {
		wholePart = *absInt
	}

	var wholeDigits, fracDigits []int16
	for wholePart.Cmp(big0) != 0 {
		wholePart.DivMod(&wholePart, bigNBase, remainder)
		wholeDigits = append(wholeDigits, int16(remainder.Int64()))
	}
	if fracPart.Cmp(big0) != 0 {
		for fracPart.Cmp(big1) != 0 {
			fracPart.DivMod(&fracPart, bigNBase, remainder)
			fracDigits = append(fracDigits, int16(remainder.Int64()))
		}
	}

	buf = appendInt16(buf, int16(len(wholeDigits)+len(fracDigits)))

	var weight int16
	if len(wholeDigits) > 0 {
		weight = int16(len(wholeDigits) - 1)
		if normExp > 0 {
			weight += int16(normExp / 4)
		}
	} else {
		weight = int16(normExp/4) - 1 + int16(len(fracDigits))
	}
	buf = appendInt16(buf, weight)
	buf = appendInt16(buf, sign)

	var dscale int16
	if exp < 0 {
		dscale = int16(-exp)
	}
	buf = appendInt16(buf, dscale)

	for i := len(wholeDigits) - 1; i >= 0; i-- {
		buf = appendInt16(buf, wholeDigits[i])
	}
	for i := len(fracDigits) - 1; i >= 0; i-- {
		buf = appendInt16(buf, fracDigits[i])
	}
	return buf
}

// numericUpperBoundBytes bounds numericEncodeBinary's output for the given
// (coefficient, exponent) pair. The whole-part nbase digit count is at most
// five per coefficient word (a 64-bit word holds at most 20 decimal digits,
// i.e. 5 nbase digits), plus two for the possible *10/*100/*1000
// normalization in numericEncodeBinary's normExp switch; a negative
// exponent additionally walks a fractional part whose
// nbase digit count grows with abs(exponent)/4 independent of the
// coefficient's own magnitude (numericEncodeBinary's normExp<0 branch), so
// the coefficient-only estimate the whole-part term gives understates the
// true size whenever exponent is very negative (e.g. a coefficient of 1
// with exponent -100 still walks ~25 fractional nbase digits).
func numericUpperBoundBytes(coeff *big.Int, exp int32) int {
	wholeNbaseDigits := 5*len(coeff.Bits()) + 2
	fracNbaseDigits := 0
	if exp < 0 {
		fracNbaseDigits = int(-exp)/4 + 2
	}
	return 8 + 2*(wholeNbaseDigits+fracNbaseDigits)
}

func appendInt16(buf []byte, n int16) []byte {
	return append(buf, byte(uint16(n)>>8), byte(uint16(n)))
}

func nbaseDigitsToInt64(src []byte) (accum int64, bytesRead, digitsRead int) {
	digits := len(src) / 2
	if digits > 4 {
		digits = 4
	}
	rp := 0
	for i := 0; i < digits; i++ {
		if i > 0 {
			accum *= nbase
		}
		accum += int64(uint16(src[rp])<<8 | uint16(src[rp+1]))
		rp += 2
	}
	return accum, rp, digits
}

func numericDecodeBinary(src []byte) (coeff *big.Int, exp int32, err error) {
	if len(src) < 8 {
		return nil, 0, converr.New(converr.InvalidWireData, "numeric", "", nil)
	}
	rp := 0
	ndigits := int(uint16(src[rp])<<8 | uint16(src[rp+1]))
	rp += 2
	weight := int16(uint16(src[rp])<<8 | uint16(src[rp+1]))
	rp += 2
	sign := uint16(src[rp])<<8 | uint16(src[rp+1])
	rp += 2
	dscale := int16(uint16(src[rp])<<8 | uint16(src[rp+1]))
	rp += 2

	if ndigits == 0 {
		return big.NewInt(0), 0, nil
	}
	if len(src[rp:]) < ndigits*2 {
		return nil, 0, converr.New(converr.InvalidWireData, "numeric", "", nil)
	}

	accum := &big.Int{}
	for i := 0; i < (ndigits+3)/4; i++ {
		n, bytesRead, digitsRead := nbaseDigitsToInt64(src[rp:])
		rp += bytesRead
		if i > 0 {
			var mul *big.Int
			switch digitsRead {
			case 1:
				mul = bigNBase
			case 2:
				mul = bigNBaseX2
			case 3:
				mul = bigNBaseX3
			case 4:
				mul = bigNBaseX4
			}
			accum.Mul(accum, mul)
		}
		accum.Add(accum, big.NewInt(n))
	}

	exp = (int32(weight) - int32(ndigits) + 1) * 4
	if dscale > 0 {
		fracNBaseDigits := int32(ndigits) - int32(weight) - 1
		fracDecimalDigits := fracNBaseDigits * 4
		if int32(dscale) > fracDecimalDigits {
			for i := int32(0); i < int32(dscale)-fracDecimalDigits; i++ {
				accum.Mul(accum, big10)
				exp--
			}
		} else if int32(dscale) < fracDecimalDigits {
			for i := int32(0); i < fracDecimalDigits-int32(dscale); i++ {
				accum.Div(accum, big10)
				exp++
			}
		}
	}

	reduced, remainder := &big.Int{}, &big.Int{}
	if exp >= 0 {
		for {
			reduced.DivMod(accum, big10, remainder)
			if remainder.Cmp(big0) != 0 {
				break
			}
			accum.Set(reduced)
			exp++
		}
	}

	if sign != 0 {
		accum.Neg(accum)
	}
	return accum, exp, nil
}

// NumericDecimal is the converter selected when the application type is
// github.com/shopspring/decimal.Decimal.
type NumericDecimal struct{}

func (NumericDecimal) CanConvert(format wire.DataFormat) bool { return format == wire.Binary }
func (NumericDecimal) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateNone
}
func (NumericDecimal) IsDbNull(decimal.Decimal) bool { return false }

func (NumericDecimal) GetSize(ctx *convert.SizeContext, v decimal.Decimal) (wire.ValueSize, error) {
	return wire.UpperBound(numericUpperBoundBytes(v.Coefficient(), v.Exponent())), nil
}

func (NumericDecimal) Write(w wire.Writer, v decimal.Decimal, _ convert.WriteState) error {
	buf := numericEncodeBinary(nil, v.Coefficient(), v.Exponent())
	return w.WriteRaw(buf)
}

func (c NumericDecimal) WriteAsync(ctx context.Context, w wire.Writer, v decimal.Decimal, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (NumericDecimal) Read(r wire.Reader) (decimal.Decimal, error) {
	return decimal.Decimal{}, converr.New(converr.InvalidWireData, "numeric", "decimal.Decimal", "Read requires a known length; use ReadN")
}

func (c NumericDecimal) ReadAsync(ctx context.Context, r wire.Reader) (decimal.Decimal, error) {
	return c.Read(r)
}

// ReadN decodes a numeric value whose length is already known from an
// outer length prefix (column descriptor or array element header).
func (NumericDecimal) ReadN(r wire.Reader, n int) (decimal.Decimal, error) {
	span, err := r.ReadBytes(n)
	if err != nil {
		return decimal.Decimal{}, converr.Wrap(err, converr.InvalidWireData, "numeric", "decimal.Decimal", nil)
	}
	coeff, exp, err := numericDecodeBinary(span)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(coeff, exp), nil
}

// NumericAPD is the converter selected when the application type is
// github.com/cockroachdb/apd.Decimal — an alternate arbitrary-precision
// backend behind the same numeric wire type, disambiguated from
// NumericDecimal purely by application type (the resolver's per-application
// type table maps apd.Decimal here and decimal.Decimal to NumericDecimal).
type NumericAPD struct{}

func (NumericAPD) CanConvert(format wire.DataFormat) bool { return format == wire.Binary }
func (NumericAPD) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateNone
}
func (NumericAPD) IsDbNull(apd.Decimal) bool { return false }

func apdToBigIntExp(v apd.Decimal) (*big.Int, int32) {
	coeff := new(big.Int).Set((*big.Int)(&v.Coeff))
	if v.Negative {
		coeff.Neg(coeff)
	}
	return coeff, v.Exponent
}

func (NumericAPD) GetSize(ctx *convert.SizeContext, v apd.Decimal) (wire.ValueSize, error) {
	coeff := (*big.Int)(&v.Coeff)
	return wire.UpperBound(numericUpperBoundBytes(coeff, v.Exponent)), nil
}

func (NumericAPD) Write(w wire.Writer, v apd.Decimal, _ convert.WriteState) error {
	coeff, exp := apdToBigIntExp(v)
	buf := numericEncodeBinary(nil, coeff, exp)
	return w.WriteRaw(buf)
}

func (c NumericAPD) WriteAsync(ctx context.Context, w wire.Writer, v apd.Decimal, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (NumericAPD) Read(r wire.Reader) (apd.Decimal, error) {
	return apd.Decimal{}, converr.New(converr.InvalidWireData, "numeric", "apd.Decimal", "Read requires a known length; use ReadN")
}

func (c NumericAPD) ReadAsync(ctx context.Context, r wire.Reader) (apd.Decimal, error) {
	return c.Read(r)
}

func (NumericAPD) ReadN(r wire.Reader, n int) (apd.Decimal, error) {
	span, err := r.ReadBytes(n)
	if err != nil {
		return apd.Decimal{}, converr.Wrap(err, converr.InvalidWireData, "numeric", "apd.Decimal", nil)
	}
	coeff, exp, err := numericDecodeBinary(span)
	if err != nil {
		return apd.Decimal{}, err
	}
	var d apd.Decimal
	d.Exponent = exp
	if coeff.Sign() < 0 {
		d.Negative = true
		coeff = new(big.Int).Neg(coeff)
	}
	d.Coeff = apd.BigInt(*coeff)
	return d, nil
}
