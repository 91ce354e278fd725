package label

import (
	"fmt"
	"strings"
)

// errorLabelTemplate prints a 4x6 ZPL label telling the packer not to ship the carton.
// The first verb is the carton number, the second a short reason.
const errorLabelTemplate = `
^XA

^CFA,90
^FB800,1,0,C
^FO15,60
^FDDO NOT SHIP\&^FS

^CFA,50
^FB800,1,0,C
^FO15,150
^FD%s\&^FS

^CFA,30
^FB800,20,0,C
^FO15,210
^FD%s\&^FS

^XZ
`

// ZPL command prefixes inside field data would end the field early.
var zplFieldSanitizer = strings.NewReplacer("^", " ", "~", " ")

// ErrorLabel renders the "DO NOT SHIP" label for cartonNumber.
func ErrorLabel(cartonNumber, message string) string {
	return fmt.Sprintf(errorLabelTemplate, zplFieldSanitizer.Replace(cartonNumber), zplFieldSanitizer.Replace(message))
}

func alreadyShippedMessage(trackingNumber string) string {
	return "Label already created for this carton: " + trackingNumber
}
