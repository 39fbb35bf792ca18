package entities

// NXCompatBit is the DllCharacteristics bit position of IMAGE_DLLCHARACTERISTICS_NX_COMPAT
const NXCompatBit = 8

// PatchResult reports the DllCharacteristics change made to an image
type PatchResult struct {
	Path   string
	Format string // "PE32" or "PE32+"
	Before uint16
	After  uint16
}

// Changed reports whether the patch modified the field
func (r *PatchResult) Changed() bool {
	return r.Before != r.After
}
