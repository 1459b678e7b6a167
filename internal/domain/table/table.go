// Package table implementa las tablas de filas genéricas sobre las que
// trabaja todo el dominio: una lista ordenada de cabeceras y filas
// cabecera→valor, con resolución de alias para las variantes históricas
// de ortografía de las hojas de cálculo de origen.
package table

// Row una fila: valores indexados por cabecera física.
type Row map[string]string

// Field un campo lógico con sus ortografías físicas conocidas.
// La primera entrada es la cabecera canónica; el resto son variantes legacy.
type Field struct {
	Name    string
	Headers []string
}

// Canonical devuelve la cabecera canónica del campo.
func (f Field) Canonical() string {
	return f.Headers[0]
}

// Table una hoja en memoria: cabeceras ordenadas + filas.
// El resolver de alias se construye una sola vez por juego de cabeceras,
// nunca en cada acceso.
type Table struct {
	headers []string
	rows    []Row
	byNorm  map[string]string // cabecera normalizada -> cabecera física (la primera gana)
}

// New crea una tabla vacía con las cabeceras dadas.
func New(headers []string) *Table {
	t := &Table{headers: append([]string(nil), headers...)}
	t.rebuildResolver()
	return t
}

// NewWithRows crea una tabla con cabeceras y filas ya cargadas.
func NewWithRows(headers []string, rows []Row) *Table {
	t := New(headers)
	t.rows = rows
	return t
}

func (t *Table) rebuildResolver() {
	t.byNorm = make(map[string]string, len(t.headers))
	for _, h := range t.headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := t.byNorm[key]; !dup {
			t.byNorm[key] = h
		}
	}
}

// Headers devuelve la lista ordenada de cabeceras.
func (t *Table) Headers() []string {
	return t.headers
}

// SetHeaders reemplaza las cabeceras y reconstruye el resolver de alias.
func (t *Table) SetHeaders(headers []string) {
	t.headers = append([]string(nil), headers...)
	t.rebuildResolver()
}

// EnsureHeader añade la cabecera al final si ninguna variante equivalente existe ya.
func (t *Table) EnsureHeader(header string) {
	if _, ok := t.byNorm[NormalizeHeader(header)]; ok {
		return
	}
	t.headers = append(t.headers, header)
	t.byNorm[NormalizeHeader(header)] = header
}

// Len devuelve el número de filas.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows devuelve las filas vivas de la tabla. El propietario único es el
// coordinador; los demás componentes solo deben leer.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row devuelve la fila i, o nil si el índice está fuera de rango.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// Append añade una fila al final.
func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

// RemoveAt quita y devuelve la fila i, o nil si el índice no es válido.
func (t *Table) RemoveAt(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	r := t.rows[i]
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return r
}

// Resolve traduce una ortografía cualquiera a la cabecera física de esta
// tabla, si existe una equivalente.
func (t *Table) Resolve(spelling string) (string, bool) {
	h, ok := t.byNorm[NormalizeHeader(spelling)]
	return h, ok
}

// Value lee un campo lógico de la fila: gana la primera variante presente
// con valor no vacío. Cabecera ausente -> "".
func (t *Table) Value(r Row, f Field) string {
	for _, spelling := range f.Headers {
		h, ok := t.Resolve(spelling)
		if !ok {
			continue
		}
		if v := r[h]; v != "" {
			return v
		}
	}
	return ""
}

// SetValue escribe un campo lógico. El valor va a la primera variante
// presente en las cabeceras (añadiendo la canónica si no hay ninguna) y se
// retro-propaga a todas las demás variantes presentes, para que cualquier
// consumidor que lea el nombre antiguo o el nuevo vea el mismo valor.
func (t *Table) SetValue(r Row, f Field, value string) {
	wrote := false
	for _, spelling := range f.Headers {
		h, ok := t.Resolve(spelling)
		if !ok {
			continue
		}
		r[h] = value
		wrote = true
	}
	if !wrote {
		t.EnsureHeader(f.Canonical())
		r[f.Canonical()] = value
	}
}
