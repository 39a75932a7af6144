package fprint

// DescriptorView is the read accessor set shared by Fingerprint (leaf
// keys) and Union (internal-node keys), letting the scoring and
// index-operator layers work against either without a type switch.
type DescriptorView interface {
	RBytes() []byte
	DomBytes() []byte
	CprintWords() []int32
	SonglenRange() (min, max uint32)
}

var (
	_ DescriptorView = (*Fingerprint)(nil)
	_ DescriptorView = (*Union)(nil)
)
