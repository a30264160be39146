package generator

import (
	"math"
	"math/rand"

	"protodata-gen/internal/schema"
)

// Естественная область float типов для выборки. Полный диапазон IEEE754
// дает бесполезные для тестовых данных порядки величин.
const floatNatural = 1e9

// naturalSigned возвращает естественную область знакового целого типа.
func naturalSigned(k schema.Kind) (int64, int64) {
	switch k {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// naturalUnsigned возвращает естественную область беззнакового типа.
func naturalUnsigned(k schema.Kind) (uint64, uint64) {
	switch k {
	case schema.KindUint32, schema.KindFixed32:
		return 0, math.MaxUint32
	default:
		return 0, math.MaxUint64
	}
}

// sampleSigned семплирует знаковое целое равномерно из замкнутого
// интервала, построенного из границ правил: gte/gt поднимают нижнюю
// границу (gte сильнее), lte/lt опускают верхнюю. Только для 64-битных
// областей шире sampleWindow выборка сужается до первых sampleWindow
// значений над нижней границей; 32-битные области покрываются целиком.
func (g *Generator) sampleSigned(k schema.Kind, rs ruleSet, rng *rand.Rand) int64 {
	lo, hi := naturalSigned(k)

	switch {
	case rs.gte != nil:
		lo = toInt64(rs.gte)
	case rs.gt != nil:
		lo = toInt64(rs.gt) + 1
	}
	switch {
	case rs.lte != nil:
		hi = toInt64(rs.lte)
	case rs.lt != nil:
		hi = toInt64(rs.lt) - 1
	}

	if lo >= hi {
		// Противоречивые или точечные границы: берем нижнюю.
		return lo
	}

	// Вычитание в uint64 корректно переносит интервалы через ноль.
	span := uint64(hi) - uint64(lo)
	if k.Is64Bit() && span >= sampleWindow {
		span = sampleWindow - 1
	}
	return lo + rng.Int63n(int64(span)+1)
}

// sampleUnsigned аналогично sampleSigned для беззнаковых типов.
func (g *Generator) sampleUnsigned(k schema.Kind, rs ruleSet, rng *rand.Rand) uint64 {
	lo, hi := naturalUnsigned(k)

	switch {
	case rs.gte != nil:
		lo = toUint64(rs.gte)
	case rs.gt != nil:
		lo = toUint64(rs.gt) + 1
	}
	switch {
	case rs.lte != nil:
		hi = toUint64(rs.lte)
	case rs.lt != nil:
		if v := toUint64(rs.lt); v > 0 {
			hi = v - 1
		} else {
			hi = 0
		}
	}

	if lo >= hi {
		return lo
	}

	span := hi - lo
	if k.Is64Bit() && span >= sampleWindow {
		span = sampleWindow - 1
	}
	return lo + uint64(rng.Int63n(int64(span)+1))
}

// sampleFloat семплирует float64 равномерно из построенного интервала.
// Строгие границы сдвигаются на малый шаг внутрь интервала.
func (g *Generator) sampleFloat(rs ruleSet, rng *rand.Rand) float64 {
	lo, hi := -floatNatural, float64(floatNatural)

	switch {
	case rs.gte != nil:
		lo = toFloat64(rs.gte)
	case rs.gt != nil:
		lo = toFloat64(rs.gt) + 1e-6
	}
	switch {
	case rs.lte != nil:
		hi = toFloat64(rs.lte)
	case rs.lt != nil:
		hi = toFloat64(rs.lt) - 1e-6
	}

	if lo >= hi {
		return lo
	}
	if hi-lo > floatNatural {
		hi = lo + floatNatural
	}
	return lo + rng.Float64()*(hi-lo)
}
