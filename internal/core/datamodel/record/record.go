// Package record holds the flat inventory tables served by the record registry.
package record

type Equipment struct {
	ID             int64  `gorm:"primaryKey"`
	IDInterno      string `gorm:"column:id_interno;not null;default:''"`
	Patrimonio     string `gorm:"column:patrimonio;not null;default:''"`
	SeloPatrimonio string `gorm:"column:selo_patrimonio;not null;default:''"`
	Equipamento    string `gorm:"column:equipamento;not null;default:''"`
	Modelo         string `gorm:"column:modelo;not null;default:''"`
	Marca          string `gorm:"column:marca;not null;default:''"`
	Serie          string `gorm:"column:serie;not null;default:''"`
	Mem            string `gorm:"column:mem;not null;default:''"`
	Processador    string `gorm:"column:processador;not null;default:''"`
	Geracao        string `gorm:"column:geracao;not null;default:''"`
	HD             string `gorm:"column:hd;not null;default:''"`
	ModHD          string `gorm:"column:mod_hd;not null;default:''"`
}

func (Equipment) TableName() string { return "equipments" }

type IP struct {
	ID          int64  `gorm:"primaryKey"`
	IP          string `gorm:"column:ip;not null;default:''"`
	Nome        string `gorm:"column:nome;not null;default:''"`
	Fabricante  string `gorm:"column:fabricante;not null;default:''"`
	EnderecoMAC string `gorm:"column:endereco_mac;not null;default:''"`
}

func (IP) TableName() string { return "ips" }

type Email struct {
	ID        int64  `gorm:"primaryKey"`
	Nro       string `gorm:"column:nro;not null;default:''"`
	Nome      string `gorm:"column:nome;not null;default:''"`
	Sobrenome string `gorm:"column:sobrenome;not null;default:''"`
	Email     string `gorm:"column:email;not null;default:''"`
	Grupo     string `gorm:"column:grupo;not null;default:''"`
	Situacao  string `gorm:"column:situacao;not null;default:''"`
}

func (Email) TableName() string { return "emails" }

// Ramal shares the email list layout.
type Ramal struct {
	ID        int64  `gorm:"primaryKey"`
	Nro       string `gorm:"column:nro;not null;default:''"`
	Nome      string `gorm:"column:nome;not null;default:''"`
	Sobrenome string `gorm:"column:sobrenome;not null;default:''"`
	Email     string `gorm:"column:email;not null;default:''"`
	Grupo     string `gorm:"column:grupo;not null;default:''"`
	Situacao  string `gorm:"column:situacao;not null;default:''"`
}

func (Ramal) TableName() string { return "ramais" }

type Software struct {
	ID         int64  `gorm:"primaryKey"`
	Nome       string `gorm:"column:nome;not null;default:''"`
	Computador string `gorm:"column:computador;not null;default:''"`
	Setor      string `gorm:"column:setor;not null;default:''"`
	Serial     string `gorm:"column:serial;not null;default:''"`
	Conta      string `gorm:"column:conta;not null;default:''"`
}

func (Software) TableName() string { return "softwares" }

type Insumo struct {
	ID           int64  `gorm:"primaryKey"`
	Insumo       string `gorm:"column:insumo;not null;default:''"`
	Data         string `gorm:"column:data;not null;default:''"`
	Qtd          string `gorm:"column:qtd;not null;default:''"`
	Nome         string `gorm:"column:nome;not null;default:''"`
	Departamento string `gorm:"column:departamento;not null;default:''"`
}

func (Insumo) TableName() string { return "insumos" }

type Requisicao struct {
	ID          int64  `gorm:"primaryKey"`
	Solicitacao string `gorm:"column:solicitacao;not null;default:''"`
	Qtd         string `gorm:"column:qtd;not null;default:''"`
	Valor       string `gorm:"column:valor;not null;default:''"`
	Total       string `gorm:"column:total;not null;default:''"`
	Requisitado string `gorm:"column:requisitado;not null;default:''"`
	Aprovado    string `gorm:"column:aprovado;not null;default:'esperando'"`
	Recebido    string `gorm:"column:recebido;not null;default:''"`
	NF          string `gorm:"column:nf;not null;default:''"`
	Tipo        string `gorm:"column:tipo;not null;default:''"`
	Fornecedor  string `gorm:"column:fornecedor;not null;default:''"`
	Link        string `gorm:"column:link;not null;default:''"`
}

func (Requisicao) TableName() string { return "requisicoes" }

type Emprestimo struct {
	ID          int64  `gorm:"primaryKey"`
	Nome        string `gorm:"column:nome;not null;default:''"`
	Equipamento string `gorm:"column:equipamento;not null;default:''"`
	Documento   string `gorm:"column:documento;not null;default:''"`
	Arquivo     string `gorm:"column:arquivo;not null;default:''"`
	Situacao    string `gorm:"column:situacao;not null;default:''"`
	Data        string `gorm:"column:data;not null;default:''"`
}

func (Emprestimo) TableName() string { return "emprestimos" }

// Models lists every record table, used for schema bootstrapping in tests.
func Models() []interface{} {
	return []interface{}{
		&Equipment{}, &IP{}, &Email{}, &Ramal{}, &Software{},
		&Insumo{}, &Requisicao{}, &Emprestimo{},
	}
}
