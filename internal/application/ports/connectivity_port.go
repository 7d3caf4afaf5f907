package ports

// ConnectivityChecker expone la señal de conectividad del almacén de datos.
// Las operaciones mutadoras deben rechazar de inmediato cuando está offline,
// nunca degradar en silencio a un no-op o a una escritura obsoleta.
type ConnectivityChecker interface {
	Connected() bool
}
