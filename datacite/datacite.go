// Package datacite defines the DataCite Metadata Schema document types this
// system exports and imports, in both their JSON (REST API) and XML (kernel-4)
// representations.
package datacite

// Version documents the DataCite specification this implementation targets.
const Version = "4.6"

// Namespace constants for the kernel-4 XML representation.
const (
	XMLNamespace      = "http://datacite.org/schema/kernel-4"
	XSINamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	XSISchemaLocation = "http://datacite.org/schema/kernel-4 " +
		"http://schema.datacite.org/meta/kernel-4.6/metadata.xsd"
)

// Name types on creators and contributors.
const (
	NameTypePersonal       = "Personal"
	NameTypeOrganizational = "Organizational"
)
