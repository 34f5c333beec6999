package qualificacao

// Status é o resultado final da qualificação de um fornecedor.
// A_CADASTRAR distingue "nenhuma evidência em nenhuma fonte" de
// EM_ANALISE, que significa "há evidência, mas inconclusiva".
type Status string

const (
	StatusAprovado   Status = "APROVADO"
	StatusReprovado  Status = "REPROVADO"
	StatusEmAnalise  Status = "EM_ANALISE"
	StatusACadastrar Status = "A_CADASTRAR"
)

// NotaMinima é o piso de aprovação: qualquer nota abaixo força
// REPROVADO, mesmo com flag "S" na planilha (mas nunca sobrepõe uma
// decisão administrativa)
const NotaMinima = 70.0
