// Package spatial implements the radius-query acceleration structures used
// by the merging (VCM/UPG) estimator to gather nearby light-subpath
// vertices around an eye vertex.
package spatial

import "github.com/ciechowoj/haste-go/pkg/core"

// Record is anything that can be indexed and queried by position: the
// photon gathering estimator indexes LightPhoton values (see pkg/transport).
type Record interface {
	Position() core.Vec3
}

// Index supports immutable-after-build radius queries over a fixed set of
// records. Both the HashGrid and the KDTree implementations satisfy it, so
// an estimator can pick either at configure time.
type Index[T Record] interface {
	// RadiusQuery invokes callback on every record whose position lies
	// within distance radius of query. radius must not exceed the radius
	// the index was built with.
	RadiusQuery(query core.Vec3, radius float64, callback func(T))

	// Len returns the number of indexed records.
	Len() int
}
