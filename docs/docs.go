// Package docs registra la especificación OpenAPI de la consola en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON []byte

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "MediCare Console",
	Description:      "Consola de administración de MediCare: sesión por pestaña y proxy de la API /admin.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(swaggerJSON),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// JSON devuelve el documento tal como se sirve en /docs.
func JSON() []byte { return swaggerJSON }

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
