package console

// User-facing messages. The console speaks Spanish.
const (
	MsgListFailed     = "No se pudieron cargar los animales. Por favor, intenta de nuevo."
	MsgSaveFailed     = "Error al guardar el animal. Por favor, intenta de nuevo."
	MsgDeleteFailed   = "Error al eliminar el animal. Por favor, intenta de nuevo."
	MsgLoginFailed    = "Nombre de usuario o contraseña inválidos"
	MsgRegisterFailed = "Error al registrarse. Por favor, intenta de nuevo."
	MsgRegistered     = "¡Has sido registrado con éxito!"
	MsgGeneric        = "Algo salió mal. Por favor, intenta de nuevo."
	MsgInvalidDraft   = "Todos los campos son obligatorios y la edad debe ser un número."
	MsgEmptyList      = "No se encontraron animales"
	MsgConfirmDelete  = "¿Estás seguro de eliminar este animal?"
)
