package constvars

// RegexFhirID matches the FHIR id datatype.
const RegexFhirID = `^[A-Za-z0-9\-\.]{1,64}$`
