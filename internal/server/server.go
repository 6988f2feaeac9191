package server

// Server объединяет HTTP-обработчики отдельных сущностей. Сейчас он один,
// PredictionServer.
type Server struct {
	PredictionServer
}

func NewServer(
	predictionServer PredictionServer,
) Server {
	return Server{
		PredictionServer: predictionServer,
	}
}
