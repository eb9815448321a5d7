// Package datazoo provides compact bit-level associative containers.
//
// The containers trade generality for density: keys and values are small
// integers (or members of a closed enum), rows live in a single flat backing
// buffer, and membership tests are word operations instead of hashing.
//
// Contents:
//   - Bitset: a sequence of bits in 32-bit blocks with range iteration
//   - BitMatrix / EnumBitMatrix: fixed-width 2D bit arrays
//   - JaggedVec / VarMatrix / JaggedBitset: variable-length rows in one buffer
//   - BitMultiMap / SparseBitMultiMap / EnumMultiMap: dense multimaps
//   - RawIndexMap: a packed bit-field index map with no value storage
package datazoo
