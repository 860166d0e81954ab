package corpus

// Document is a source text loaded into the knowledge base.
type Document struct {
	ID   string
	Text string
}

// Chunk is a bounded slice of a source document used as a retrieval unit.
// Chunks are immutable once produced by the splitter.
type Chunk struct {
	SourceID string
	Index    int
	Text     string
}

// Seed returns the built-in ONAT document set. These are the curated texts
// the assistant answers from; extra documents can be dropped into the
// configured documents directory and are ingested alongside them.
func Seed() []Document {
	return []Document{
		{ID: "onat-001", Text: "La Oficina Nacional de Administración Tributaria (ONAT) es la entidad encargada de velar por la aplicación de la legislación relativa a impuestos y otros ingresos no tributarios en Cuba. Su misión incluye desarrollar la organización para su recaudación en todo el país y organizar y dirigir la auditoría fiscal, adoptando las medidas requeridas para contrarrestar la evasión fiscal."},
		{ID: "onat-002", Text: "Entre las funciones principales de la ONAT se encuentran: la gestión, control, determinación y recaudación de los tributos."},
		{ID: "onat-003", Text: "La ONAT brinda servicio de asistencia activa y personalizada a través de diferentes medios, durante y tras la apertura de los negocios, para garantizar el aporte correcto y en tiempo de las obligaciones tributarias."},
		{ID: "onat-004", Text: "La ONAT ha habilitado servicios online en su portal web, como el Vector Fiscal, que permite obtener el documento que los contribuyentes utilizan para pagar en el banco y que contiene todas sus obligaciones tributarias."},
		{ID: "onat-005", Text: "La ONAT se conecta con la Ficha Única del Ciudadano, lo que agiliza los trámites y servicios a los contribuyentes, minimiza errores en la captación de datos y evita solicitar la misma información varias veces."},
		{ID: "onat-006", Text: "La ONAT tiene como propósito cumplir el plan de recaudación, avanzar en su transformación digital e implementar el perfeccionamiento de la estructura administrativa y su funcionamiento."},
		{ID: "onat-007", Text: "La ONAT aplica intereses, recargos y sanciones que correspondan, tramita solicitudes de devoluciones de ingresos y emite certificaciones relacionadas con la situación fiscal de los contribuyentes."},
		{ID: "onat-008", Text: "La ONAT ha incrementado su presencia en redes sociales como Facebook, Twitter y el canal 'OnatdeCuba' en Telegram, ofreciendo servicios interactivos y facilitando la comunicación con los contribuyentes."},
		{ID: "onat-009", Text: "La ONAT es clave en el desarrollo económico, político y social del país, centrando su trabajo en ingresar al Presupuesto del Estado los ingresos definidos en la Ley del Presupuesto, de los cuales el 53% se capta como resultado de la aplicación de impuestos, tasas y contribuciones."},
		{ID: "onat-010", Text: "El Vector Fiscal es un documento emitido por la ONAT que detalla las obligaciones tributarias del contribuyente, incluyendo impuestos, tasas y contribuciones. Se actualiza automáticamente y puede descargarse desde el Portal Tributario. [Fuente: Desoft](https://www.desoft.cu/es/noticias/274)"},
		{ID: "onat-011", Text: "Para obtener el Vector Fiscal, el contribuyente debe registrarse en el Portal Tributario de la ONAT. Este documento es esencial para realizar pagos en el banco y contiene todas las obligaciones fiscales del contribuyente. [Fuente: Facebook ONAT](https://www.facebook.com/onat.gob.cu/posts/si-necesita-descargar-su-vector-fiscal-debe-registrarse-en-el-portal-tributario-/682802034028919/)"},
		{ID: "onat-012", Text: "La Declaración Jurada ( DJ ) es un documento oficial mediante el cual los contribuyentes informan a la Oficina Nacional de Administración Tributaria (ONAT) sobre los ingresos obtenidos durante un ejercicio fiscal, calculan el impuesto correspondiente y realizan el pago debido."},
		{ID: "onat-013", Text: "La Declaración Jurada ( DJ ) del Impuesto sobre Ingresos Personales debe presentarse anualmente entre el 6 de enero y el 30 de abril. Los contribuyentes que declaren y paguen antes del 28 de febrero pueden acogerse a una bonificación del 5%. [Fuente: Granma](https://www.granma.cu/cuba/2024-12-28/comienza-el-6-de-enero-proceso-de-declaracion-jurada-de-onat)"},
		{ID: "onat-014", Text: "La Ley 174 del Presupuesto del Estado para 2025 establece una nueva escala progresiva para el cálculo del Impuesto sobre Ingresos Personales, aplicable a los ingresos obtenidos en el ejercicio fiscal 2024. [Fuente: Juventud Rebelde](https://juventudrebelde.cu/cuba/2025-01-04/conozca-sobre-la-nueva-escala-progresiva-para-la-declaracion-jurada-del-impuesto-sobre-ingresos-personales)"},
		{ID: "onat-015", Text: "Los modelos de Declaración Jurada, como el DJ 08, están disponibles en formato Excel y PDF en la sección Descargas del Portal Tributario de la ONAT. Estos modelos ayudan a los contribuyentes a calcular y presentar sus impuestos correctamente. [Fuente: Portal Tributario ONAT](https://www.onat.gob.cu/home/modelos-formularios)"},
		{ID: "onat-016", Text: "La ONAT ha implementado servicios en línea que permiten a los contribuyentes consultar sus pagos realizados, descargar el Vector Fiscal y realizar consultas directamente desde el Portal Tributario. [Fuente: Instagram ONAT](https://www.instagram.com/onat_cuba/p/DCRaB1KqjOk/)"},
		{ID: "onat-017", Text: "El proceso de declaración jurada para el ejercicio fiscal 2024 comienza el 6 de enero y concluye el 30 de abril de 2025. Los productores agropecuarios individuales del sector cañero deben presentar su declaración entre el 1 de julio y el 31 de octubre de 2025. [Fuente: Radio Progreso](https://www.radioprogreso.icrt.cu/onat-anuncia-proceso-de-declaracion-jurada-para-2025/)"},
		{ID: "onat-018", Text: "La ONAT ofrece bonificaciones por pronto pago y por el uso de canales digitales. Declarar y pagar antes del 28 de febrero otorga un descuento del 5%, y utilizar canales digitales como Transfermóvil brinda un beneficio adicional del 3%. [Fuente: Artemisa Diario](https://artemisadiario.cu/2025/01/que-debe-saber-de-la-nueva-escala-progresiva-para-la-declaracion-jurada-del-impuesto-sobre-ingresos-personales/)"},
		{ID: "onat-019", Text: "La url del Portal Tributario de la ONAT es : https://www.onat.gob.cu/"},
	}
}
