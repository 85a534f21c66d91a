package servers

import (
	"github.com/swaggo/swag"
)

// swaggerDoc serves the embedded document to the swagger UI as JSON.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	swagger, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	doc, err := swagger.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(doc)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
