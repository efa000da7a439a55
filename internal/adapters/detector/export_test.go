package detector

var DetectExported = detect
