package generator

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"protodata-gen/internal/constraint"
)

// Алфавиты генерации строк: при флаге ascii только буквы и цифры,
// иначе добавляется пунктуация.
const (
	alphabetASCII = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	alphabetFull  = alphabetASCII + "-_.!?@#$%&*+= "
)

// text синтезирует строку или срез байт по правилам длины и формы.
// Структурный флаг делегирует выделенному генератору формы и отключает
// врезку prefix/suffix/contains.
func (g *Generator) text(rs ruleSet, rng *rand.Rand, asString bool) any {
	if rs.structural != "" {
		s := g.structural(rs.structural, rng)
		if asString {
			return s
		}
		return []byte(s)
	}

	lo, hi := int64(defaultMinLen), int64(defaultMaxLen)
	if rs.minLen != nil {
		lo = toInt64(rs.minLen)
	}
	if rs.maxLen != nil {
		hi = toInt64(rs.maxLen)
	}
	if hi < lo {
		hi = lo
	}

	alphabet := alphabetFull
	if rs.ascii {
		alphabet = alphabetASCII
	}

	target := lo + rng.Int63n(hi-lo+1)
	s := g.randomText(int(target), alphabet, rng)
	s = splice(s, rs, int(hi), rng)
	s = clampText(s, int(lo), int(hi), alphabet, rng)

	// Попадание в not_in разрешается заменой последнего символа.
	for attempt := 0; attempt < 10 && stringInSet(s, rs.notIn); attempt++ {
		if len(s) == 0 {
			s = g.randomText(1, alphabet, rng)
			continue
		}
		s = s[:len(s)-1] + string(alphabet[rng.Intn(len(alphabet))])
	}

	if asString {
		return s
	}
	return []byte(s)
}

// randomText возвращает n случайных символов алфавита.
func (g *Generator) randomText(n int, alphabet string, rng *rand.Rand) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

// splice врезает prefix в начало, suffix в конец (если после префикса
// осталось место) и contains в случайную внутреннюю позицию, усекая
// соседний текст для соблюдения maxLen.
func splice(s string, rs ruleSet, maxLen int, rng *rand.Rand) string {
	if rs.hasPrefix {
		s = rs.prefix + s
		if len(s) > maxLen {
			s = s[:maxLen]
		}
	}

	if rs.hasSuffix && len(rs.prefix)+len(rs.suffix) <= maxLen {
		if len(s)+len(rs.suffix) > maxLen {
			s = s[:maxLen-len(rs.suffix)]
		}
		s = s + rs.suffix
	}

	if rs.hasContains && !strings.Contains(s, rs.contains) {
		lo := len(rs.prefix)
		hi := len(s)
		if rs.hasSuffix {
			hi -= len(rs.suffix)
		}
		if hi < lo {
			hi = lo
		}
		pos := lo
		if hi > lo {
			pos = lo + rng.Intn(hi-lo+1)
		}
		s = s[:pos] + rs.contains + s[pos:]
		if len(s) > maxLen {
			s = s[:maxLen]
		}
	}

	return s
}

// clampText добирает или усекает строку до окна [minLen, maxLen].
func clampText(s string, minLen, maxLen int, alphabet string, rng *rand.Rand) string {
	for len(s) < minLen {
		s += string(alphabet[rng.Intn(len(alphabet))])
	}
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// inSet сообщает, входит ли строка в множество not_in.
func stringInSet(s string, set []any) bool {
	for _, v := range set {
		if sv, ok := asString(v); ok && sv == s {
			return true
		}
	}
	return false
}

// structural делегирует генерацию выделенному генератору формы.
// Правило ip случайно выбирает между v4 и v6.
func (g *Generator) structural(rule string, rng *rand.Rand) string {
	switch rule {
	case constraint.RuleEmail:
		return g.randomText(6+rng.Intn(6), alphabetLower, rng) + "@" + g.hostname(rng)
	case constraint.RuleHostname:
		return g.hostname(rng)
	case constraint.RuleIP:
		if rng.Intn(2) == 0 {
			return g.ipv4(rng)
		}
		return g.ipv6(rng)
	case constraint.RuleIPv4:
		return g.ipv4(rng)
	case constraint.RuleIPv6:
		return g.ipv6(rng)
	case constraint.RuleUUID:
		return g.uuid(rng)
	}
	return ""
}

const alphabetLower = "abcdefghijklmnopqrstuvwxyz"

func (g *Generator) hostname(rng *rand.Rand) string {
	tlds := []string{"com", "org", "net", "io"}
	return g.randomText(4+rng.Intn(8), alphabetLower, rng) + "." + tlds[rng.Intn(len(tlds))]
}

func (g *Generator) ipv4(rng *rand.Rand) string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(rng.Intn(256)))
	}
	return sb.String()
}

func (g *Generator) ipv6(rng *rand.Rand) string {
	const hex = "0123456789abcdef"
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		if i > 0 {
			sb.WriteByte(':')
		}
		for j := 0; j < 4; j++ {
			sb.WriteByte(hex[rng.Intn(len(hex))])
		}
	}
	return sb.String()
}

// uuid генерирует версию 4 из переданного источника случайности:
// *rand.Rand реализует io.Reader, поэтому результат воспроизводим по seed.
func (g *Generator) uuid(rng *rand.Rand) string {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.Nil.String()
	}
	return u.String()
}
