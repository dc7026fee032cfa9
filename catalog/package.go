package catalog

import (
	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/ir"
)

// Package is the summary of one package-info chunk.
type Package struct {
	PackageID    uint32
	ChangeNumber uint32
	BillingType  int32
	LicenseType  int32
	Status       int32
	AppIDs       []uint32
	DepotIDs     []uint32

	data *ir.Collection
}

func (p *Package) Tree() *ir.Collection {
	return p.data
}

// NewPackage summarizes a package-info chunk. The fields may sit at the
// top of the tree or in a single collection keyed by the package id.
func NewPackage(ch *datafile.PackageInfoChunk) *Package {
	data := ch.Data
	if data == nil {
		data = ir.NewCollection()
	}
	body := data
	if data.Get("packageid") == nil && data.Len() == 1 {
		if c, err := data.At(0).Value.Collection(); err == nil {
			body = c
		}
	}
	res := &Package{
		PackageID:    ch.PackageID,
		ChangeNumber: ch.LastChangeNumber,
		AppIDs:       ids(sub(body, "appids")),
		DepotIDs:     ids(sub(body, "depotids")),
		data:         data,
	}
	res.BillingType, _ = ir.As[int32](orZero(body.Get("billingtype")))
	res.LicenseType, _ = ir.As[int32](orZero(body.Get("licensetype")))
	res.Status, _ = ir.As[int32](orZero(body.Get("status")))
	return res
}

func orZero(v *ir.Token) *ir.Token {
	if v == nil {
		return ir.FromInt32(0)
	}
	return v
}

// Packages summarizes every chunk of p.
func Packages(p *datafile.PackageInfo) []*Package {
	res := make([]*Package, 0, len(p.Chunks))
	for i := range p.Chunks {
		res = append(res, NewPackage(&p.Chunks[i]))
	}
	return res
}
