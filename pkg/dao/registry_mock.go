package dao

type MockDaoRegistry struct {
	Domain MockDomainDao
	Link   MockLinkDao
}

func (m *MockDaoRegistry) ToDaoRegistry() *DaoRegistry {
	r := DaoRegistry{
		Domain: &m.Domain,
		Link:   &m.Link,
	}
	return &r
}

func GetMockDaoRegistry() *MockDaoRegistry {
	reg := MockDaoRegistry{
		Domain: *NewMockDomainDao(),
		Link:   *NewMockLinkDao(),
	}
	return &reg
}
