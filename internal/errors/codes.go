package errors

// Códigos de erro no formato CATEGORIA_DETALHE. O frontend mapeia as
// mensagens exibidas a partir destes códigos.

const (
	// Autenticação (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login necessário
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // email/senha incorretos
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expirado
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // token malformado
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revogado (logout)
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email duplicado
	AuthCNPJAlreadyExists  = "AUTH_CNPJ_EXISTS"         // cnpj duplicado
	AuthCodeInvalid        = "AUTH_CODE_INVALID"        // código de recuperação inválido
	AuthCodeExpired        = "AUTH_CODE_EXPIRED"        // código de recuperação expirado

	// Autorização (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // sem permissão
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // restrito a administradores

	// Validação (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Recursos (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Fornecedores (FORNECEDOR_)
	FornecedorNotFound = "FORNECEDOR_NOT_FOUND"

	// Documentos e upload (DOCUMENTO_ / UPLOAD_)
	DocumentoNotFound     = "DOCUMENTO_NOT_FOUND"
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// Planilhas de qualificação (PLANILHA_)
	PlanilhaNotFound    = "PLANILHA_NOT_FOUND"    // arquivo ausente nos diretórios
	PlanilhaReadFailed  = "PLANILHA_READ_FAILED"  // falha ao ler o arquivo
	PlanilhaSemRegistro = "PLANILHA_SEM_REGISTRO" // fornecedor sem linha correspondente

	// Erros internos (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalMailError     = "INTERNAL_MAIL_ERROR"
)
