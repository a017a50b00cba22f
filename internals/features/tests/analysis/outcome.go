package analysis

// Outcome: hasil panggilan model. Err != nil berarti caller harus pakai fallback.
type Outcome struct {
	Classification *Classification
	Err            error
}

func Failed(err error) Outcome {
	return Outcome{Err: err}
}

func Succeeded(c Classification) Outcome {
	return Outcome{Classification: &c}
}

func (o Outcome) OK() bool {
	return o.Err == nil && o.Classification != nil
}

// OrElse mengembalikan klasifikasi model, atau hasil fallback kalau gagal.
func (o Outcome) OrElse(fallback func() (Classification, error)) (Classification, error) {
	if o.OK() {
		return *o.Classification, nil
	}
	return fallback()
}
