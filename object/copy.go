package object

// CopyProperties transfers every shared property from src to dest through
// their accessor metadata: each readable property of src that dest can
// write is read and re-bound on dest. Properties that cannot be read,
// written or coerced are skipped rather than failing the whole copy. Pass
// a pointer dest when it is a struct.
func CopyProperties(dest, src any) {
	from := Wrap(src)
	to := Wrap(dest)

	for _, name := range from.GetterNames() {
		if !to.HasSetter(name) {
			continue
		}

		value, err := from.Get(name)
		if err != nil {
			continue
		}

		_ = to.Set(name, value)
	}
}
