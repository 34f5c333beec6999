package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/planilha"
)

// ErrorInfo é o resultado da tradução de um erro interno
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converte erros de infraestrutura em código + mensagem
// apresentáveis. Detalhes sensíveis (DSN, SQL, caminhos) nunca chegam
// ao cliente; o erro original permanece nos logs.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	var naoEncontrada *planilha.NaoEncontradaError
	if errors.As(err, &naoEncontrada) {
		return ErrorInfo{
			Code:    PlanilhaNotFound,
			Message: "A planilha de qualificação não está disponível no momento",
		}
	}

	// Violações de constraint do PostgreSQL
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// Erros de rede/conexão
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Falha ao conectar com um serviço externo. Tente novamente em instantes",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este e-mail já está cadastrado",
		}
	}
	if strings.Contains(errLower, "cnpj") {
		return ErrorInfo{
			Code:    AuthCNPJAlreadyExists,
			Message: "Este CNPJ já está cadastrado",
		}
	}
	if strings.Contains(errLower, "fornecedor_id") || strings.Contains(errLower, "decisoes_fornecedor") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Já existe uma decisão registrada para este fornecedor",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Já existe um registro com estes dados",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existem dados vinculados que impedem a exclusão",
		}
	}
	if strings.Contains(errLower, "fornecedor_id") || strings.Contains(errLower, "fk_fornecedores") {
		return ErrorInfo{
			Code:    FornecedorNotFound,
			Message: "Fornecedor não encontrado",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "O registro referenciado não foi encontrado",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "O e-mail é obrigatório"}
	}
	if strings.Contains(errLower, "senha") || strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A senha é obrigatória"}
	}
	if strings.Contains(errLower, "nome") {
		return ErrorInfo{Code: ValidationRequired, Message: "O nome é obrigatório"}
	}
	if strings.Contains(errLower, "cnpj") {
		return ErrorInfo{Code: ValidationRequired, Message: "O CNPJ é obrigatório"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Campos obrigatórios não foram preenchidos",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "fornecedor") {
		return "Fornecedor não encontrado"
	}
	if strings.Contains(contextLower, "documento") {
		return "Documento não encontrado"
	}
	if strings.Contains(contextLower, "homolog") {
		return "Registro de homologação não encontrado"
	}
	if strings.Contains(contextLower, "decisao") || strings.Contains(contextLower, "decisão") {
		return "Decisão não encontrada"
	}

	return "O registro solicitado não foi encontrado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "cadastro") || strings.Contains(contextLower, "create") {
		return "Erro ao realizar o cadastro. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "atualiza") || strings.Contains(contextLower, "update") {
		return "Erro ao atualizar o registro. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "upload") {
		return "Erro ao enviar o arquivo. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "email") || strings.Contains(contextLower, "e-mail") {
		return "Erro ao enviar o e-mail. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}
