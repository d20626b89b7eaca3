package app

// List describes the locally cached reports.
func (s Service) List() (ListResult, error) {
	reports, err := s.Store.List()
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Reports: reports}, nil
}
