package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/db"
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// Importa fornecedores de uma planilha xlsx para o banco. Linhas sem
// e-mail ou com e-mail já cadastrado são ignoradas. A senha inicial de
// cada fornecedor importado é o CNPJ sem máscara; o portal exige a
// troca no primeiro acesso via recuperação de senha.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Uso: go run cmd/seed/main.go <planilha.xlsx>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Falha ao carregar configuração:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Falha ao conectar ao banco:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Falha ao migrar o banco:", err)
	}

	fornecedorRepo := repository.NewFornecedorRepository(db.GetDB())

	fmt.Printf("Lendo planilha: %s\n", filePath)
	fornecedores, err := lerFornecedores(filePath)
	if err != nil {
		log.Fatal("Falha ao ler a planilha:", err)
	}
	fmt.Printf("Fornecedores encontrados: %d\n", len(fornecedores))

	fmt.Print("Confirmar a importação? (sim/nao): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "sim" && confirm != "s" {
		fmt.Println("Importação cancelada.")
		return
	}

	importados := 0
	ignorados := 0
	for i := range fornecedores {
		fornecedor := &fornecedores[i]

		if _, err := fornecedorRepo.FindByEmail(fornecedor.Email); err == nil {
			ignorados++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Falha ao consultar fornecedor existente:", err)
		}

		if err := fornecedorRepo.Create(fornecedor); err != nil {
			fmt.Printf("Falha ao importar %q: %v\n", fornecedor.Email, err)
			ignorados++
			continue
		}
		importados++
	}

	fmt.Printf("Importação concluída: %d importados, %d ignorados\n", importados, ignorados)
}

func lerFornecedores(filePath string) ([]model.Fornecedor, error) {
	locator := planilha.NewDirLocator([]string{"."}, map[string]string{
		"importacao": filePath,
	})
	tab, err := planilha.NewCarregador(locator).Carregar("importacao")
	if err != nil {
		return nil, err
	}

	var fornecedores []model.Fornecedor
	vistos := make(map[string]bool)

	for _, linha := range tab.Linhas() {
		email := linha.Valor("email", "e_mail")
		nome := linha.Valor("agente", "nome_fantasia", "nome", "razao_social")
		if email == "" || nome == "" || vistos[email] {
			continue
		}
		vistos[email] = true

		cnpj := util.NormalizeCNPJ(linha.Valor("cnpj"))
		senhaHash, err := util.HashPassword(cnpj)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar senha inicial: %w", err)
		}

		fornecedores = append(fornecedores, model.Fornecedor{
			Nome:      nome,
			Email:     email,
			CNPJ:      cnpj,
			SenhaHash: senhaHash,
			Categoria: linha.Valor("categoria", "grupo"),
		})
	}

	return fornecedores, nil
}
