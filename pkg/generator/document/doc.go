// Package document assembles artifact content from the parameter set and
// the script variants.
//
// YAML documents are built as ordered gopkg.in/yaml.v3 node trees so key
// order is stable and deferred mustache references are always emitted
// double-quoted. JSON documents are typed structs. Chart manifests are
// delegated to the chart package. Nothing here touches the file system.
package document
