package upload

import (
	"bytes"
	"debug/elf"
	"fmt"
	"sort"
)

// User programs are linked to the fixed load address of the brain's user
// code region. The flat binary starts there, gaps between sections are
// zero filled, which is what the loader expects.
const loadAddr = 0x0380_0000

type section struct {
	addr uint64
	data []byte
}

// objcopy flattens the allocatable PROGBITS sections of f into the binary
// image the brain loads.
func objcopy(f *elf.File) (*bytes.Buffer, error) {
	sections := make([]*section, 0, 10)
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if s.Addr < loadAddr {
			return nil, fmt.Errorf("section %s below load address: %#x", s.Name, s.Addr)
		}
		sections = append(sections, &section{s.Addr, data})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("no loadable sections")
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].addr < sections[j].addr
	})

	w := new(bytes.Buffer)
	for _, s := range sections {
		off := int(s.addr - loadAddr)
		if pad := off - w.Len(); pad > 0 {
			w.Write(make([]byte, pad))
		}
		w.Write(s.data)
	}
	return w, nil
}
