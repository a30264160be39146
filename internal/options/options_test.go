package options

import "testing"

// TestParse_Merge проверяет порядок наложения шаблонов: от наименее
// специфичного к наиболее специфичному, поздний ключ перезаписывает ранний.
func TestParse_Merge(t *testing.T) {
	o, err := Parse(`
* max_count:10 alphabet:full
User.* max_count:5
*.name max_len:8
User.name max_len:3 note:pinned
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name    string
		message string
		field   string
		want    map[string]any
	}{
		{
			name:    "exact pattern wins",
			message: "User",
			field:   "name",
			want: map[string]any{
				"max_count": int64(5),
				"alphabet":  "full",
				"max_len":   int64(3),
				"note":      "pinned",
			},
		},
		{
			name:    "field wildcard applies to other messages",
			message: "Group",
			field:   "name",
			want: map[string]any{
				"max_count": int64(10),
				"alphabet":  "full",
				"max_len":   int64(8),
			},
		},
		{
			name:    "global only",
			message: "Group",
			field:   "size",
			want: map[string]any{
				"max_count": int64(10),
				"alphabet":  "full",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.Merge(tt.message, tt.field)
			if len(got) != len(tt.want) {
				t.Fatalf("Merge() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Merge()[%q] = %v (%T), want %v (%T)", k, got[k], got[k], v, v)
				}
			}
		})
	}
}

// TestParse_Comments проверяет вырезание комментариев всех трех видов.
func TestParse_Comments(t *testing.T) {
	o, err := Parse(`
// шапка файла
# еще комментарий
User.name max_len:5 // хвостовой комментарий
/* блочный
   комментарий на несколько строк */
User.age max_count:2 # хвост
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := o.Merge("User", "name")
	if got["max_len"] != int64(5) {
		t.Errorf("max_len = %v, want 5", got["max_len"])
	}
	got = o.Merge("User", "age")
	if got["max_count"] != int64(2) {
		t.Errorf("max_count = %v, want 2", got["max_count"])
	}
	if len(o.Merge("шапка", "файла")) != 0 {
		t.Error("комментарий попал в шаблоны")
	}
}

// TestParse_Coerce проверяет приведение целочисленных значений.
func TestParse_Coerce(t *testing.T) {
	o, err := Parse("* count:42 label:v42 neg:-7")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	hints := o.Merge("Any", "field")
	if v, ok := hints["count"].(int64); !ok || v != 42 {
		t.Errorf("count = %v (%T), want int64(42)", hints["count"], hints["count"])
	}
	if v, ok := hints["neg"].(int64); !ok || v != -7 {
		t.Errorf("neg = %v (%T), want int64(-7)", hints["neg"], hints["neg"])
	}
	if v, ok := hints["label"].(string); !ok || v != "v42" {
		t.Errorf("label = %v (%T), want string", hints["label"], hints["label"])
	}
}

// TestParse_BadPair проверяет ошибку на паре без двоеточия.
func TestParse_BadPair(t *testing.T) {
	if _, err := Parse("User.name maxlen5"); err == nil {
		t.Error("Parse() = nil, want error for pair without colon")
	}
}

// TestMerge_NilOverlay проверяет, что nil наложение дает пустой словарь.
func TestMerge_NilOverlay(t *testing.T) {
	var o *Overlay
	if got := o.Merge("User", "name"); len(got) != 0 {
		t.Errorf("Merge() on nil = %v, want empty", got)
	}
}
