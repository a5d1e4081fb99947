// @title Pet Registry API
// @version 1.0
// @description Alta, consulta, edición y baja de mascotas con grupos y rasgos reutilizables.
// @BasePath /
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
