package generator

import (
	"math/rand"
	"testing"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/schema"
)

// TestViolateScalar_InDense проверяет нарушение правила in на плотном
// множестве: возмущение первого элемента попадает в соседний элемент,
// результат все равно обязан выйти из множества.
func TestViolateScalar_InDense(t *testing.T) {
	g := &Generator{}
	f := &schema.Field{Kind: schema.KindInt64}

	set := make([]any, 0, 11)
	for i := int64(1); i <= 11; i++ {
		set = append(set, i)
	}
	target := constraint.Constraint{Rule: constraint.RuleIn, Param: set}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		v := g.violateScalar(f, target, rng)
		if inSet(set, v) {
			t.Fatalf("violateScalar(seed %d) = %v, элемент множества in", seed, v)
		}
	}
}

// TestViolateScalar_InStrings проверяет строковое множество, где суффикс
// первого элемента совпадает с другим элементом.
func TestViolateScalar_InStrings(t *testing.T) {
	g := &Generator{}
	f := &schema.Field{Kind: schema.KindString}

	set := []any{"a", "a_x"}
	target := constraint.Constraint{Rule: constraint.RuleIn, Param: set}

	rng := rand.New(rand.NewSource(1))
	v := g.violateScalar(f, target, rng)
	if inSet(set, v) {
		t.Fatalf("violateScalar() = %v, элемент множества in", v)
	}
}

// TestViolateScalar_InBothBools фиксирует поведение на множестве из обоих
// булевых значений: нарушить его невозможно, вызов обязан завершиться.
func TestViolateScalar_InBothBools(t *testing.T) {
	g := &Generator{}
	f := &schema.Field{Kind: schema.KindBool}

	target := constraint.Constraint{Rule: constraint.RuleIn, Param: []any{true, false}}

	rng := rand.New(rand.NewSource(1))
	if _, ok := g.violateScalar(f, target, rng).(bool); !ok {
		t.Fatal("violateScalar() должен вернуть булево значение")
	}
}
