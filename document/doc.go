// Package document encodes saved maps as JSON documents and loads JSON documents with object mappers.
package document
