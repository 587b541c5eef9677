// Package repository define los contratos de acceso a datos del directorio:
// structs de dominio, interfaces por colección y la taxonomía de errores.
//
// Los adapters (internal/store/mongo, internal/store/memory) implementan
// estas interfaces y son la frontera de conversión de errores: ningún error
// crudo del driver escapa sin mapear a uno de los sentinels de errors.go.
package repository
