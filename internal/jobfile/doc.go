// Package jobfile loads declarative HCL job definitions into an analysis
// model. It is responsible for file discovery, HCL parsing, schema decoding
// and the translation of decoded blocks into model types, delegating the
// interpretation of material and step bodies to the kinds registered for
// them.
package jobfile
