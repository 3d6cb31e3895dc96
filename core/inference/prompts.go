package inference

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

const (
	helpfulSystemPrompt = "You are a helpful assistant."

	synthesisSystemPrompt = "You are an expert in communication protocols and data structures. " +
		"Generate accurate and consistent byte sequence messages according to the given protocol and message structure. " +
		"Rely only on the provided information and do not add assumptions or unnecessary details. " +
		"Format byte sequences as hex bytes separated by spaces, like '00 01 ... fe fd'."

	repairSystemPrompt = "You are an expert in communication protocols and data formatting. " +
		"Given a message and the message structure of a protocol, modify the message so that it conforms to the structure. " +
		"Rely only on the provided information and do not add assumptions or unnecessary details."

	// пример структуры для DICOM, задает форму ответа
	structureExemplar = `[("PDU Header", length=6 bytes, subsection=[("PDU Type", length=1 byte), ("Reserved", length=1 byte), ("Length", length=4 bytes)]), ` +
		`("PDU Data", length=variable, subsection=[("Data Elements", length=variable)])]`

	typesExemplar = `['A-ASSOCIATE-RQ', 'A-RELEASE-RQ', 'C-ECHO-RQ', 'C-ECHO-RSP', ...]`

	exemplarType    = "SSH_MSG_DISCONNECT"
	exemplarMessage = "01 00 00 12 00 00 00 09 44 69 73 63 6f 6e 6e 65 63 74 65 64 65 6e"

	// генерация идет от полей переменной длины к полям длины и типа
	backwardReasoning = "Generating a byte sequence message is a backward process. " +
		"1. The Language Tag section of SSH_MSG_DISCONNECT is variable. Take 'en', which is \"65 6e\" in ASCII, so Language Tag is '65 6e'. " +
		"2. The Description section is variable. Take 'Disconnected', which is \"44 69 73 63 6f 6e 6e 65 63 74 65 64\" in ASCII, so Description is '44 69 73 63 6f 6e 6e 65 63 74 65 64'. " +
		"3. The Reason Code section is 4 bytes. Take 9, which is 9 in hexadecimal, so Reason Code is '00 00 00 09'. " +
		"4. The Length section is 4 bytes. Language Tag is 2 bytes (from 1), Description is 12 bytes (from 2), Reason Code is 4 bytes (from 3), " +
		"so Length is 2 + 12 + 4 = 18 in decimal, 12 in hexadecimal: '00 00 00 12'. " +
		"5. The Reserved section is 1 byte set to '00'. " +
		"6. The PDU Type is 1 with 1 byte, so PDU Type is '01'. " +
		"7. So the SSH_MSG_DISCONNECT byte sequence is '" + exemplarMessage + "'."

	repairReasoning = "The SSH_MSG_DISCONNECT message is '" + exemplarMessage + "'. " +
		"1. The PDU Type is 1. It is correct. " +
		"2. The Reserved section is 1 byte set to '00'. It is correct. " +
		"3. The Length is 18 in decimal, 12 in hexadecimal: Reason Code 4 bytes, Description 12 bytes, Language Tag 2 bytes, 18 bytes in total, so '00 00 00 12'. It is correct. " +
		"4. The Reason Code is 9. It is correct. " +
		"5. The Description 'Disconnected' is \"44 69 73 63 6f 6e 6e 65 63 74 65 64\" in ASCII. It is correct. " +
		"6. The Language Tag 'en' is \"65 6e\" in ASCII. It is correct. " +
		"7. The SSH_MSG_DISCONNECT message is correct and needs no modification."
)

// exemplarStructure - структура SSH_MSG_DISCONNECT для примеров генерации и исправления
var exemplarStructure = entities.Section{
	Name:             "SSH Protocol Message Structure",
	LengthDescriptor: "6 bytes",
	Children: []entities.Section{
		{
			Name:             "PDU Header",
			LengthDescriptor: "6 bytes",
			Children: []entities.Section{
				{Name: "PDU Type", LengthDescriptor: "1 byte"},
				{Name: "Reserved", LengthDescriptor: "1 byte"},
				{Name: "Length", LengthDescriptor: "4 bytes"},
			},
		},
		{
			Name:             exemplarType,
			LengthDescriptor: "variable",
			Children: []entities.Section{
				{Name: "Reason Code", LengthDescriptor: "4 bytes"},
				{Name: "Description", LengthDescriptor: "variable"},
				{Name: "Language Tag", LengthDescriptor: "variable"},
			},
		},
	},
}

// encodeForPrompt - словарное представление дерева в json для вставки в промпт
func encodeForPrompt(s entities.Section) string {
	out, err := sonic.ConfigStd.MarshalToString(entities.EncodeSection(s))
	if err != nil {
		// словарь из строк и списков всегда сериализуется, сюда попасть не должны
		logger.Errorf(err, "failed to encode section %q for prompt", s.Name)
		return s.Display()
	}
	return out
}

func structurePrompt(protocol string) string {
	return fmt.Sprintf("For the DICOM protocol, the protocol message structure is %s. "+
		"For the %s protocol, the protocol message structure is:", structureExemplar, protocol)
}

func typesPrompt(protocol string) string {
	return fmt.Sprintf("For the DICOM protocol, client request message types include %s. "+
		"For the %s protocol, all client request message types are:", typesExemplar, protocol)
}

func specializePrompt(protocol string, base entities.Section, t entities.ProtocolType) string {
	return fmt.Sprintf("For the %s protocol, the base protocol message structure is %s. "+
		"A specialized protocol message structure for the message type %s based on this structure is:",
		protocol, encodeForPrompt(base), t)
}

func sequencesPrompt(protocol string, types []entities.ProtocolType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = "'" + string(t) + "'"
	}
	return fmt.Sprintf("Given the %s protocol with client request message types [%s], "+
		"generate as many client request message type sequences as possible, "+
		"combining %d to %d message types to maximize state coverage.",
		protocol, strings.Join(names, ", "), entities.MinSequenceLen, entities.MaxSequenceLen)
}

func synthesisPrompt(protocol string, structure entities.Section, t entities.ProtocolType) string {
	return fmt.Sprintf("For the %s protocol, the message structure of the message type %s is as follows: %s. "+
		"Generate a byte sequence message of type %s according to this structure. "+
		"Format the byte sequence as a string of hex bytes separated by spaces, like '00 01 ... fe fd'. "+
		"For example, the %s protocol message structure is: %s. %s",
		protocol, t, encodeForPrompt(structure), t,
		exemplarType, encodeForPrompt(exemplarStructure), backwardReasoning)
}

func repairPrompt(protocol, flattened string, structure entities.Section, t entities.ProtocolType) string {
	return fmt.Sprintf("If the message '%s' of the %s protocol does not match the format of type '%s', "+
		"which is defined as %s, modify or fix it to conform to the structure of type %s. "+
		"For example, the %s protocol message structure is: %s. %s",
		flattened, protocol, t, encodeForPrompt(structure), t,
		exemplarType, encodeForPrompt(exemplarStructure), repairReasoning)
}
