package i18n

// Default is the built-in message catalog. English, Arabic and Urdu are
// complete; the remaining languages cover the common surface and fall back
// to the raw key elsewhere.
var Default = Catalog{
	"drop_files_here": {
		English: "Pick files to upload",
		Arabic:  "اختر الملفات للتحميل",
		Urdu:    "اپ لوڈ کرنے کے لیے فائلیں منتخب کریں",
		Spanish: "Selecciona archivos para subir",
		French:  "Choisissez des fichiers à importer",
		German:  "Dateien zum Hochladen auswählen",
	},
	"supported_formats": {
		English: "Supported formats: PDF, DOCX, XLSX, CSV, JSON, MD, PNG, JPG",
		Arabic:  "الصيغ المدعومة: PDF, DOCX, XLSX, CSV, JSON, MD, PNG, JPG",
		Urdu:    "تعاون یافتہ فارمیٹس: PDF, DOCX, XLSX, CSV, JSON, MD, PNG, JPG",
	},
	"processing_file": {
		English: "Processing file...",
		Arabic:  "جاري معالجة الملف...",
		Urdu:    "فائل پر کارروائی ہو رہی ہے...",
		Spanish: "Procesando archivo...",
		French:  "Traitement du fichier...",
		German:  "Datei wird verarbeitet...",
	},
	"file_processed": {
		English: "%d file(s) processed successfully. Ask a question below.",
		Arabic:  "تمت معالجة %d ملف (ملفات) بنجاح. اطرح سؤالاً أدناه.",
		Urdu:    "%d فائل(یں) کامیابی سے پروسیس ہو گئیں۔ نیچے ایک سوال پوچھیں۔",
	},
	"type_message": {
		English: "Type your message or ask for a report...",
		Arabic:  "اكتب رسالتك أو اطلب تقريرًا...",
		Urdu:    "اپنا پیغام ٹائپ کریں یا رپورٹ طلب کریں...",
		Spanish: "Escribe tu mensaje o pide un informe...",
		French:  "Saisissez votre message ou demandez un rapport...",
		German:  "Nachricht eingeben oder einen Bericht anfordern...",
	},
	"send": {
		English: "Send",
		Arabic:  "إرسال",
		Urdu:    "بھیجیں",
		Spanish: "Enviar",
		French:  "Envoyer",
		Hindi:   "भेजें",
		German:  "Senden",
	},
	"listening": {
		English: "Listening...",
		Arabic:  "يستمع...",
		Urdu:    "سن رہا ہے...",
		Spanish: "Escuchando...",
		French:  "Écoute...",
		German:  "Hört zu...",
	},
	"ask_about_file": {
		English: "Ask a Question about the file",
		Arabic:  "اطرح سؤالاً عن الملف",
		Urdu:    "فائل کے بارے میں ایک سوال پوچھیں",
	},
	"generate_on_canvas": {
		English: "Generate on Canvas",
		Arabic:  "إنشاء على اللوحة",
		Urdu:    "کینوس پر بنائیں",
	},
	"canvas_panel": {
		English: "Canvas Panel",
		Arabic:  "لوحة العرض",
		Urdu:    "کینوس پینل",
		Spanish: "Panel de lienzo",
		French:  "Panneau canevas",
		German:  "Canvas-Bereich",
	},
	"quick_actions": {
		English: "Quick Actions",
		Arabic:  "إجراءات سريعة",
		Urdu:    "فوری اقدامات",
		Spanish: "Acciones rápidas",
		French:  "Actions rapides",
		German:  "Schnellaktionen",
	},
	"summarize_file": {
		English: "Summarize",
		Arabic:  "تلخيص",
		Urdu:    "خلاصہ",
		Spanish: "Resumir",
		French:  "Résumer",
		German:  "Zusammenfassen",
	},
	"create_mind_map": {
		English: "Mind Map",
		Arabic:  "خريطة ذهنية",
		Urdu:    "مائنڈ میپ",
	},
	"analyze_data": {
		English: "Analyze Data",
		Arabic:  "تحليل البيانات",
		Urdu:    "ڈیٹا کا تجزیہ",
		Spanish: "Analizar datos",
		French:  "Analyser les données",
		German:  "Daten analysieren",
	},
	"export_options": {
		English: "Export Options",
		Arabic:  "خيارات التصدير",
		Urdu:    "برآمد کے اختیارات",
		Spanish: "Opciones de exportación",
		French:  "Options d'export",
		German:  "Exportoptionen",
	},
	"export_pdf": {
		English: "Export PDF",
		Arabic:  "تصدير PDF",
		Urdu:    "پی ڈی ایف برآمد کریں",
	},
	"export_docx": {
		English: "Export DOCX",
		Arabic:  "تصدير DOCX",
		Urdu:    "ڈاکس برآمد کریں",
	},
	"export_xlsx": {
		English: "Export XLSX",
		Arabic:  "تصدير XLSX",
		Urdu:    "ایکسل برآمد کریں",
	},
	"export_png": {
		English: "Export PNG",
		Arabic:  "تصدير PNG",
		Urdu:    "پی این جی برآمد کریں",
	},
	"export_history": {
		English: "Export Chat History",
		Arabic:  "تصدير سجل المحادثة",
		Urdu:    "چیٹ کی تاریخ برآمد کریں",
	},
	"export_saved": {
		English: "Exported to %s.",
		Arabic:  "تم التصدير إلى %s.",
		Urdu:    "%s میں برآمد ہو گیا۔",
	},
	"translating": {
		English: "Translating...",
		Arabic:  "جاري الترجمة...",
		Urdu:    "ترجمہ ہو رہا ہے...",
		Spanish: "Traduciendo...",
		French:  "Traduction...",
		German:  "Übersetzen...",
	},
	"translation_language": {
		English: "Translation language",
		Arabic:  "لغة الترجمة",
		Urdu:    "ترجمے کی زبان",
	},
	"original_language": {
		English: "Original",
		Arabic:  "الأصل",
		Urdu:    "اصل",
		Spanish: "Original",
		French:  "Original",
		German:  "Original",
	},
	"upload_first": {
		English: "Please upload files first.",
		Arabic:  "يرجى تحميل الملفات أولاً.",
		Urdu:    "براہ کرم پہلے فائلیں اپ لوڈ کریں۔",
		Spanish: "Primero sube los archivos.",
		French:  "Veuillez d'abord importer des fichiers.",
		German:  "Bitte zuerst Dateien hochladen.",
	},
	"parse_failed": {
		English: "Failed to process one or more files. Please try a different file.",
		Arabic:  "فشلت معالجة ملف واحد أو أكثر. يرجى تجربة ملف آخر.",
		Urdu:    "ایک یا زیادہ فائلوں پر کارروائی ناکام ہو گئی۔ براہ کرم دوسری فائل آزمائیں۔",
	},
	"ai_failed": {
		English: "An error occurred while communicating with the AI. Please check your API key and try again.",
		Arabic:  "حدث خطأ أثناء الاتصال بالذكاء الاصطناعي. يرجى التحقق من مفتاح API والمحاولة مرة أخرى.",
		Urdu:    "اے آئی سے رابطے میں خرابی پیش آئی۔ براہ کرم اپنی API کلید چیک کریں اور دوبارہ کوشش کریں۔",
	},
	"canvas_updated": {
		English: "Canvas updated based on your request.",
		Arabic:  "تم تحديث اللوحة بناءً على طلبك.",
		Urdu:    "آپ کی درخواست کے مطابق کینوس اپ ڈیٹ ہو گیا۔",
	},
	"no_table_found": {
		English: "No table found in the canvas to export.",
		Arabic:  "لم يتم العثور على جدول في اللوحة للتصدير.",
		Urdu:    "برآمد کرنے کے لیے کینوس میں کوئی ٹیبل نہیں ملا۔",
	},
	"request_in_flight": {
		English: "A request is already in progress. Please wait for it to finish.",
		Arabic:  "هناك طلب قيد التنفيذ بالفعل. يرجى انتظار انتهائه.",
		Urdu:    "ایک درخواست پہلے ہی زیر عمل ہے۔ براہ کرم اس کے مکمل ہونے کا انتظار کریں۔",
	},
}
