// Package r3d holds the explicit scene graph: homogeneous transforms,
// nodes with local and derived world matrices, cameras and primitive meshes.
//
// World matrices are never updated implicitly. After changing any Local,
// call Propagate (or PropagateFrom) on the highest changed node.
package r3d
