// Package asset defines the media library's two views of a file and the pure
// functions that derive identity from an object key.
//
// A StorageObject is what the bucket listing reports; a Record is a row of the
// metadata table. Both carry the public URL, which is the join key between the
// two stores.
//
// Normalize turns a raw key into {Title, Folder, Extension, MediaType}. The
// rules are fixed: titles already shown to editors depend on them.
//
// BuildFolderTree expands folder paths into every prefix at every depth so a
// UI can offer "create here" at levels that hold no object yet.
package asset
