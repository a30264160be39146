// Package record содержит упорядоченное представление значений сообщения,
// общее для генератора и кодера.
package record

// Record является упорядоченным отображением имени поля в значение.
// Значением может быть скаляр (int64, uint64, float64, bool, string,
// []byte), вложенный *Record или срез []any для repeated полей.
//
// Порядок полей повторяет порядок объявления в сообщении. Record
// создается заново на каждый вызов генерации и после возврата не меняется.
type Record struct {
	keys   []string
	values map[string]any
}

// New создает пустую запись.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// Set добавляет или заменяет значение поля. Порядок определяется первым
// вызовом Set для имени.
func (r *Record) Set(name string, value any) {
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Delete убирает поле из записи.
func (r *Record) Delete(name string) {
	if _, ok := r.values[name]; !ok {
		return
	}
	delete(r.values, name)
	for i, k := range r.keys {
		if k == name {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Get возвращает значение поля.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields возвращает имена полей в порядке добавления.
func (r *Record) Fields() []string {
	return r.keys
}

// Len возвращает число полей в записи.
func (r *Record) Len() int {
	return len(r.keys)
}
