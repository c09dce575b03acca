package models

// 演示数据，/seed 接口写入

// PlaceholderUser 明文密码仅用于初始化时哈希
type PlaceholderUser struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// PlaceholderInvoice 演示发票，Date 格式 2006-01-02
type PlaceholderInvoice struct {
	CustomerID string
	Amount     int64
	Status     string
	Date       string
}

var PlaceholderUsers = []PlaceholderUser{
	{
		ID:       "410544b2-4001-4271-9855-fec4b6a6442a",
		Name:     "User",
		Email:    "user@nextmail.com",
		Password: "123456",
	},
}

var PlaceholderCustomers = []Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: strPtr("/customers/evil-rabbit.png")},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: strPtr("/customers/delba-de-oliveira.png")},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: strPtr("/customers/lee-robinson.png")},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: strPtr("/customers/michael-novotny.png")},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: strPtr("/customers/amy-burns.png")},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: strPtr("/customers/balazs-orban.png")},
}

var PlaceholderInvoices = []PlaceholderInvoice{
	{CustomerID: PlaceholderCustomers[0].ID, Amount: 15795, Status: InvoiceStatusPending, Date: "2022-12-06"},
	{CustomerID: PlaceholderCustomers[1].ID, Amount: 20348, Status: InvoiceStatusPending, Date: "2022-11-14"},
	{CustomerID: PlaceholderCustomers[4].ID, Amount: 3040, Status: InvoiceStatusPaid, Date: "2022-10-29"},
	{CustomerID: PlaceholderCustomers[3].ID, Amount: 44800, Status: InvoiceStatusPaid, Date: "2023-09-10"},
	{CustomerID: PlaceholderCustomers[5].ID, Amount: 34577, Status: InvoiceStatusPending, Date: "2023-08-05"},
	{CustomerID: PlaceholderCustomers[2].ID, Amount: 54246, Status: InvoiceStatusPending, Date: "2023-07-16"},
	{CustomerID: PlaceholderCustomers[0].ID, Amount: 666, Status: InvoiceStatusPending, Date: "2023-06-27"},
	{CustomerID: PlaceholderCustomers[3].ID, Amount: 32545, Status: InvoiceStatusPaid, Date: "2023-06-09"},
	{CustomerID: PlaceholderCustomers[4].ID, Amount: 1250, Status: InvoiceStatusPaid, Date: "2023-06-17"},
	{CustomerID: PlaceholderCustomers[5].ID, Amount: 8546, Status: InvoiceStatusPaid, Date: "2023-06-07"},
	{CustomerID: PlaceholderCustomers[1].ID, Amount: 500, Status: InvoiceStatusPaid, Date: "2023-08-19"},
	{CustomerID: PlaceholderCustomers[5].ID, Amount: 8945, Status: InvoiceStatusPaid, Date: "2023-06-03"},
	{CustomerID: PlaceholderCustomers[2].ID, Amount: 1000, Status: InvoiceStatusPaid, Date: "2022-06-05"},
}

var PlaceholderRevenue = []Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}

func strPtr(s string) *string {
	return &s
}
