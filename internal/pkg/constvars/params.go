package constvars

const (
	URLParamID        = "id"
	URLParamReference = "reference"
)

const (
	URLQueryParamPage           = "page"
	URLQueryParamPageSize       = "page_size"
	URLQueryParamStatus         = "status"
	URLQueryParamSpecialization = "specialization"
	URLQueryParamPatientID      = "patientId"
	URLQueryParamToken          = "token"
)

const (
	FormFieldFile      = "file"
	FormFieldTitle     = "title"
	FormFieldPatientID = "patientId"
)
