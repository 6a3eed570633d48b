// Package walk provides depth-first traversal of the descriptor hierarchy of
// a weft schema file.
package walk

import "github.com/weftlang/weft/desc"

// Descriptors walks all descriptors declared in the given file, in
// declaration order, calling fn for each. If fn returns an error, the walk
// stops and that error is returned.
func Descriptors(file *desc.File, fn func(desc.Descriptor) error) error {
	return DescriptorsEnterAndExit(file, fn, nil)
}

// DescriptorsEnterAndExit walks all descriptors declared in the given file,
// calling enter before a descriptor's children are visited and exit (if not
// nil) after.
func DescriptorsEnterAndExit(file *desc.File, enter, exit func(desc.Descriptor) error) error {
	for _, rec := range file.Records() {
		if err := record(rec, enter, exit); err != nil {
			return err
		}
	}
	for _, en := range file.Enums() {
		if err := enum(en, enter, exit); err != nil {
			return err
		}
	}
	for _, svc := range file.Services() {
		if err := enter(svc); err != nil {
			return err
		}
		for _, mtd := range svc.Methods() {
			if err := enter(mtd); err != nil {
				return err
			}
			if exit != nil {
				if err := exit(mtd); err != nil {
					return err
				}
			}
		}
		if exit != nil {
			if err := exit(svc); err != nil {
				return err
			}
		}
	}
	return nil
}

func record(rec *desc.Record, enter, exit func(desc.Descriptor) error) error {
	if err := enter(rec); err != nil {
		return err
	}
	for _, fld := range rec.Fields() {
		if err := enter(fld); err != nil {
			return err
		}
		if exit != nil {
			if err := exit(fld); err != nil {
				return err
			}
		}
	}
	for _, nested := range rec.Records() {
		if err := record(nested, enter, exit); err != nil {
			return err
		}
	}
	for _, en := range rec.Enums() {
		if err := enum(en, enter, exit); err != nil {
			return err
		}
	}
	if exit != nil {
		if err := exit(rec); err != nil {
			return err
		}
	}
	return nil
}

func enum(en *desc.Enum, enter, exit func(desc.Descriptor) error) error {
	if err := enter(en); err != nil {
		return err
	}
	for _, val := range en.Values() {
		if err := enter(val); err != nil {
			return err
		}
		if exit != nil {
			if err := exit(val); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		if err := exit(en); err != nil {
			return err
		}
	}
	return nil
}
