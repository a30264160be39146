package generator

import (
	"math"
	"math/rand"
	"net"
	"strings"
	"testing"

	"github.com/google/uuid"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/schema"
)

// TestStructural проверяет формы структурных генераторов.
func TestStructural(t *testing.T) {
	g := &Generator{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		if s := g.structural(constraint.RuleEmail, rng); !strings.Contains(s, "@") {
			t.Errorf("email = %q, want @", s)
		}

		host := g.structural(constraint.RuleHostname, rng)
		if strings.HasPrefix(host, "-") || !strings.Contains(host, ".") {
			t.Errorf("hostname = %q", host)
		}

		v4 := g.structural(constraint.RuleIPv4, rng)
		if ip := net.ParseIP(v4); ip == nil || ip.To4() == nil {
			t.Errorf("ipv4 = %q не разбирается", v4)
		}

		v6 := g.structural(constraint.RuleIPv6, rng)
		if ip := net.ParseIP(v6); ip == nil || strings.Contains(v6, ".") {
			t.Errorf("ipv6 = %q не разбирается", v6)
		}

		if s := g.structural(constraint.RuleIP, rng); net.ParseIP(s) == nil {
			t.Errorf("ip = %q не разбирается", s)
		}

		if s := g.structural(constraint.RuleUUID, rng); uuid.Validate(s) != nil {
			t.Errorf("uuid = %q не разбирается", s)
		}
	}
}

// TestStructural_Deterministic проверяет воспроизводимость uuid по seed.
func TestStructural_Deterministic(t *testing.T) {
	g := &Generator{}

	a := g.structural(constraint.RuleUUID, rand.New(rand.NewSource(7)))
	b := g.structural(constraint.RuleUUID, rand.New(rand.NewSource(7)))
	if a != b {
		t.Errorf("uuid(seed 7) = %q и %q, want равенство", a, b)
	}
}

// TestSplice проверяет врезку prefix/suffix/contains с усечением до maxLen.
func TestSplice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rs := ruleSet{
		prefix: "AB_", hasPrefix: true,
		suffix: "_Z", hasSuffix: true,
		contains: "mid", hasContains: true,
	}
	s := splice("xxxxxxxxxx", rs, 20, rng)
	if !strings.HasPrefix(s, "AB_") {
		t.Errorf("splice() = %q, want prefix AB_", s)
	}
	if !strings.HasSuffix(s, "_Z") {
		t.Errorf("splice() = %q, want suffix _Z", s)
	}
	if !strings.Contains(s, "mid") {
		t.Errorf("splice() = %q, want contains mid", s)
	}
	if len(s) > 20 {
		t.Errorf("len = %d, want <= 20", len(s))
	}
}

// TestClampText проверяет добор и усечение до окна длины.
func TestClampText(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if s := clampText("a", 3, 5, alphabetASCII, rng); len(s) != 3 {
		t.Errorf("clampText(short) len = %d, want 3", len(s))
	}
	if s := clampText("abcdefgh", 3, 5, alphabetASCII, rng); s != "abcde" {
		t.Errorf("clampText(long) = %q, want abcde", s)
	}
}

// TestNumericSampling проверяет попадание выборки в границы.
func TestNumericSampling(t *testing.T) {
	g := &Generator{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		if v := g.sampleSigned(schema.KindInt32, ruleSet{gte: int64(0), lte: int64(150)}, rng); v < 0 || v > 150 {
			t.Fatalf("sampleSigned = %d, want in [0, 150]", v)
		}

		if v := g.sampleUnsigned(schema.KindUint32, ruleSet{gt: uint64(10), lt: uint64(13)}, rng); v <= 10 || v >= 13 {
			t.Fatalf("sampleUnsigned = %d, want in (10, 13)", v)
		}

		if v := g.sampleFloat(ruleSet{gt: float64(0), lt: float64(1)}, rng); v <= 0 || v >= 1 {
			t.Fatalf("sampleFloat = %v, want in (0, 1)", v)
		}
	}
}

// TestSampleSigned_FullRange проверяет окно выборки на полном интервале
// int64: значение остается в первых sampleWindow значениях над нижней
// границей.
func TestSampleSigned_FullRange(t *testing.T) {
	g := &Generator{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		n := g.sampleSigned(schema.KindInt64, ruleSet{}, rng)
		if n >= math.MinInt64+sampleWindow {
			t.Fatalf("sampleSigned() = %d вышел за окно выборки", n)
		}
	}
}

// TestSampleSigned_FullRange32 проверяет, что окно выборки не действует
// на 32-битные области: равномерная выборка из полного интервала int32
// покрывает и отрицательную, и неотрицательную половины.
func TestSampleSigned_FullRange32(t *testing.T) {
	g := &Generator{}
	rng := rand.New(rand.NewSource(42))

	var neg, nonNeg bool
	for i := 0; i < 100; i++ {
		n := g.sampleSigned(schema.KindInt32, ruleSet{}, rng)
		if n < math.MinInt32 || n > math.MaxInt32 {
			t.Fatalf("sampleSigned() = %d вне области int32", n)
		}
		if n < 0 {
			neg = true
		} else {
			nonNeg = true
		}
	}
	if !neg || !nonNeg {
		t.Errorf("выборка int32 покрыла только одну половину области: neg=%v nonNeg=%v", neg, nonNeg)
	}
}

// TestSampleUnsigned_FullRange32 аналогично для uint32: значения выше
// sampleWindow достижимы.
func TestSampleUnsigned_FullRange32(t *testing.T) {
	g := &Generator{}
	rng := rand.New(rand.NewSource(42))

	var high bool
	for i := 0; i < 100; i++ {
		n := g.sampleUnsigned(schema.KindUint32, ruleSet{}, rng)
		if n > math.MaxUint32 {
			t.Fatalf("sampleUnsigned() = %d вне области uint32", n)
		}
		if n >= sampleWindow {
			high = true
		}
	}
	if !high {
		t.Error("выборка uint32 не вышла за sampleWindow на 100 значениях")
	}
}
